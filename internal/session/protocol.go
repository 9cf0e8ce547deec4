package session

import "encoding/json"

// Message is the envelope for everything on the wire, both directions.
type Message struct {
	Type    string          `json:"type"`
	Seq     int64           `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	// Server → client
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeError   = "error"

	// Pointer and wheel events
	TypePointerDown  = "pointer.down"
	TypePointerMove  = "pointer.move"
	TypePointerUp    = "pointer.up"
	TypePointerLeave = "pointer.leave"
	TypeWheel        = "wheel"

	// Surface measurement
	TypeSurfaceResize = "surface.resize"

	// Command-layer operations
	TypeCmdAddNode    = "cmd.addNode"
	TypeCmdConnect    = "cmd.connect"
	TypeCmdDisconnect = "cmd.disconnect"
	TypeCmdRemoveNode = "cmd.removeNode"
	TypeCmdSelect     = "cmd.select"
	TypeCmdPanTo      = "cmd.panTo"
	TypeCmdPanBy      = "cmd.panBy"
	TypeCmdZoom       = "cmd.zoom"
	TypeCmdArrange    = "cmd.arrange"
	TypeCmdClear      = "cmd.clear"
	TypeCmdResetView  = "cmd.resetView"
)

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type WheelPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"deltaY"`
}

type SurfacePayload struct {
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

type AddNodePayload struct {
	Kind  string          `json:"kind" validate:"required,oneof=text image"`
	X     float64         `json:"x"`
	Y     float64         `json:"y"`
	Props json.RawMessage `json:"props,omitempty"`
}

type ConnectPayload struct {
	From       string `json:"from" validate:"required"`
	To         string `json:"to" validate:"required"`
	FromHandle string `json:"fromHandle,omitempty" validate:"omitempty,oneof=top right bottom left"`
	ToHandle   string `json:"toHandle,omitempty" validate:"omitempty,oneof=top right bottom left"`
}

type DisconnectPayload struct {
	ID string `json:"id" validate:"required"`
}

type RemoveNodePayload struct {
	ID string `json:"id" validate:"required"`
}

type SelectPayload struct {
	ID string `json:"id"` // empty clears the selection
}

type PanPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ZoomPayload struct {
	Level   float64  `json:"level" validate:"gt=0"`
	AnchorX *float64 `json:"anchorX,omitempty"`
	AnchorY *float64 `json:"anchorY,omitempty"`
}

type ArrangePayload struct {
	Padding *float64 `json:"padding,omitempty"`
}

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	BoardID   string `json:"boardId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
