package session

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cvaz1306/nexora/internal/engine"
	"github.com/cvaz1306/nexora/internal/typeid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Session is one client's board: a private engine driven by the messages
// arriving on that client's connection. There is no cross-session state;
// each connection edits its own canvas.
type Session struct {
	ID      string
	BoardID string
	engine  *engine.Engine
}

// NewSession creates a session around a fresh engine. When seed is true
// the demo board is loaded.
func NewSession(id string, opts engine.Options, seed bool) *Session {
	e := engine.New(opts)
	if seed {
		engine.SeedSample(e)
	}
	return &Session{
		ID:      id,
		BoardID: typeid.NewBoardID(),
		engine:  e,
	}
}

// Engine exposes the underlying engine, mainly for tests.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// State returns the current render snapshot.
func (s *Session) State() engine.RenderState {
	return s.engine.Snapshot()
}

// Apply decodes, validates and executes one inbound message against the
// engine. The engine itself never errors on expected failures (a
// rejected connection is a nil return, not an error); errors here mean
// the message was malformed.
func (s *Session) Apply(msg *Message) error {
	switch msg.Type {
	case TypePointerDown:
		p, err := decode[PointerPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.PointerDown(p.X, p.Y)

	case TypePointerMove:
		p, err := decode[PointerPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.PointerMove(p.X, p.Y)

	case TypePointerUp:
		p, err := decode[PointerPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.PointerUp(p.X, p.Y)

	case TypePointerLeave:
		p, err := decode[PointerPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.PointerLeave(p.X, p.Y)

	case TypeWheel:
		p, err := decode[WheelPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.Wheel(p.X, p.Y, p.DeltaY)

	case TypeSurfaceResize:
		p, err := decode[SurfacePayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.SetSurfaceSize(p.Width, p.Height)

	case TypeCmdAddNode:
		p, err := decode[AddNodePayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.AddNode(engine.NodeKind(p.Kind), p.X, p.Y, p.Props)

	case TypeCmdConnect:
		p, err := decode[ConnectPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.AddConnection(p.From, p.To, engine.Handle(p.FromHandle), engine.Handle(p.ToHandle))

	case TypeCmdDisconnect:
		p, err := decode[DisconnectPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.RemoveConnection(p.ID)

	case TypeCmdRemoveNode:
		p, err := decode[RemoveNodePayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.RemoveNode(p.ID)

	case TypeCmdSelect:
		p, err := decode[SelectPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.SetSelectedNodeID(p.ID)

	case TypeCmdPanTo:
		p, err := decode[PanPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.PanTo(p.X, p.Y)

	case TypeCmdPanBy:
		p, err := decode[PanPayload](msg.Payload)
		if err != nil {
			return err
		}
		s.engine.PanBy(p.X, p.Y)

	case TypeCmdZoom:
		p, err := decode[ZoomPayload](msg.Payload)
		if err != nil {
			return err
		}
		if p.AnchorX != nil && p.AnchorY != nil {
			s.engine.SetZoomAt(p.Level, *p.AnchorX, *p.AnchorY)
		} else {
			s.engine.SetZoom(p.Level)
		}

	case TypeCmdArrange:
		p, err := decode[ArrangePayload](msg.Payload)
		if err != nil {
			return err
		}
		padding := -1.0 // engine substitutes its default
		if p.Padding != nil {
			padding = *p.Padding
		}
		s.engine.Arrange(padding)

	case TypeCmdClear:
		s.engine.Clear()

	case TypeCmdResetView:
		s.engine.ResetView()

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}

	return nil
}

// decode unmarshals and validates a payload. A nil payload decodes to
// the zero value, which validation may still reject.
func decode[T any](raw json.RawMessage) (T, error) {
	var p T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return p, fmt.Errorf("invalid payload: %w", err)
		}
	}
	if err := validate.Struct(&p); err != nil {
		return p, fmt.Errorf("invalid payload: %w", err)
	}
	return p, nil
}
