package engine

import "encoding/json"

// NodeKind identifies which renderable payload a node carries. The engine
// never interprets the payload beyond the width/height hint at creation.
type NodeKind string

const (
	NodeKindText  NodeKind = "text"
	NodeKindImage NodeKind = "image"
)

// Minimum node dimensions in stage units. Enforced after every mutation.
const (
	MinNodeWidth  = 30.0
	MinNodeHeight = 30.0
)

// Default node dimensions used when the creation props carry no hint.
const (
	DefaultNodeWidth  = 160.0
	DefaultNodeHeight = 100.0
)

// Node is one placed content item. Geometry lives in stage coordinates;
// the payload is an opaque data bag for the rendering collaborator.
type Node struct {
	ID      string          `json:"id"`
	Kind    NodeKind        `json:"kind"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	ShowID  bool            `json:"showId"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Bounds returns the node's rectangle in stage space.
func (n Node) Bounds() Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// Handle names one of the four connector attachment points on a node edge.
type Handle string

const (
	HandleTop    Handle = "top"
	HandleRight  Handle = "right"
	HandleBottom Handle = "bottom"
	HandleLeft   Handle = "left"
)

// Handles lists all connector handles in clockwise order from the top.
var Handles = []Handle{HandleTop, HandleRight, HandleBottom, HandleLeft}

// Valid reports whether h names a known connector handle.
func (h Handle) Valid() bool {
	switch h {
	case HandleTop, HandleRight, HandleBottom, HandleLeft:
		return true
	}
	return false
}

// connectorSpread is the stage-unit offset of a connector point from the
// edge midpoint, so that an inbound and an outbound line sharing an edge
// stay visually separated.
const connectorSpread = 6.0

// Connector addresses one endpoint of a connection: a handle on a node.
type Connector struct {
	NodeID string `json:"nodeId"`
	Handle Handle `json:"handle"`
}

// Connection is a directed link between connector points on two nodes.
type Connection struct {
	ID   string    `json:"id"`
	From Connector `json:"from"`
	To   Connector `json:"to"`
}

// ConnectorPoint returns the stage position of a connector handle on the
// node. Outbound points are shifted one way along the edge and inbound
// points the other, by connectorSpread.
func ConnectorPoint(n Node, h Handle, outbound bool) (float64, float64) {
	spread := connectorSpread
	if !outbound {
		spread = -connectorSpread
	}

	switch h {
	case HandleTop:
		return n.X + n.Width/2 + spread, n.Y
	case HandleBottom:
		return n.X + n.Width/2 + spread, n.Y + n.Height
	case HandleLeft:
		return n.X, n.Y + n.Height/2 + spread
	case HandleRight:
		return n.X + n.Width, n.Y + n.Height/2 + spread
	default:
		return n.X + n.Width/2, n.Y + n.Height/2
	}
}

// handleMidpoint returns the stage position of the handle's edge midpoint,
// which is where the connector affordance is drawn and hit-tested.
func handleMidpoint(n Node, h Handle) (float64, float64) {
	switch h {
	case HandleTop:
		return n.X + n.Width/2, n.Y
	case HandleBottom:
		return n.X + n.Width/2, n.Y + n.Height
	case HandleLeft:
		return n.X, n.Y + n.Height/2
	case HandleRight:
		return n.X + n.Width, n.Y + n.Height/2
	default:
		return n.X + n.Width/2, n.Y + n.Height/2
	}
}
