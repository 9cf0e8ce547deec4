package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

// Client pumps one websocket connection into its session's engine and
// streams a fresh render state back after every handled message. The
// read pump is the only goroutine touching the engine, which keeps the
// engine's single-writer model intact without locks.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	ClientID string
	Session  *Session
}

func NewClient(hub *Hub, conn *websocket.Conn, clientID string, sess *Session) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		ClientID: clientID,
		Session:  sess,
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
			// hub already stopped; it closed the connection itself
		}
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			c.SendError(msg.Seq, "invalid message")
			continue
		}

		if err := c.Session.Apply(&msg); err != nil {
			slog.Warn("message rejected", "error", err, "type", msg.Type, "client", c.ClientID)
			c.SendError(msg.Seq, err.Error())
			continue
		}

		c.SendState(msg.Seq)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}

// SendWelcome sends the connection greeting with the session identity.
func (c *Client) SendWelcome() {
	payload, _ := json.Marshal(WelcomePayload{
		SessionID: c.Session.ID,
		BoardID:   c.Session.BoardID,
	})
	c.Send(&Message{Type: TypeWelcome, Payload: payload})
}

// SendState sends the full render snapshot, echoing the sequence number
// of the message that produced it.
func (c *Client) SendState(seq int64) {
	payload, err := json.Marshal(c.Session.State())
	if err != nil {
		slog.Error("marshal state", "error", err)
		return
	}
	c.Send(&Message{Type: TypeState, Seq: seq, Payload: payload})
}

func (c *Client) SendError(seq int64, message string) {
	payload, _ := json.Marshal(ErrorPayload{Message: message})
	c.Send(&Message{Type: TypeError, Seq: seq, Payload: payload})
}
