package engine

import "encoding/json"

// RenderConnection is a connection resolved to screen-space line
// endpoints, ready for the rendering collaborator to draw.
type RenderConnection struct {
	ID   string    `json:"id"`
	From Connector `json:"from"`
	To   Connector `json:"to"`
	X1   float64   `json:"x1"`
	Y1   float64   `json:"y1"`
	X2   float64   `json:"x2"`
	Y2   float64   `json:"y2"`
}

// PendingConnection is the rubber-band line of an in-progress connect
// session, from the source connector point to the current pointer
// position, in screen space.
type PendingConnection struct {
	From Connector `json:"from"`
	X1   float64   `json:"x1"`
	Y1   float64   `json:"y1"`
	X2   float64   `json:"x2"`
	Y2   float64   `json:"y2"`
}

// RenderState is the full read model a rendering collaborator needs for
// one frame. Everything is a copy; holding on to it across events is
// safe.
type RenderState struct {
	Nodes          []Node             `json:"nodes"`
	Connections    []RenderConnection `json:"connections"`
	Viewport       Viewport           `json:"viewport"`
	SelectedNodeID string             `json:"selectedNodeId,omitempty"`
	Guides         []Guide            `json:"guides,omitempty"`
	Session        SessionState       `json:"session"`
	Pending        *PendingConnection `json:"pending,omitempty"`
}

// Snapshot assembles the current render state. Connections whose
// endpoint nodes vanished mid-flight are skipped; the stores cascade
// removals, so that only guards against a torn external mutation.
func (e *Engine) Snapshot() RenderState {
	state := RenderState{
		Nodes:          e.nodes.All(),
		Viewport:       e.viewport,
		SelectedNodeID: e.selectedNodeID,
		Guides:         e.Guides(),
		Session:        e.session.state,
	}

	for _, c := range e.conns.All() {
		from, okF := e.nodes.Get(c.From.NodeID)
		to, okT := e.nodes.Get(c.To.NodeID)
		if !okF || !okT {
			continue
		}
		fx, fy := ConnectorPoint(from, c.From.Handle, true)
		tx, ty := ConnectorPoint(to, c.To.Handle, false)
		x1, y1 := e.viewport.StageToScreen(fx, fy)
		x2, y2 := e.viewport.StageToScreen(tx, ty)
		state.Connections = append(state.Connections, RenderConnection{
			ID: c.ID, From: c.From, To: c.To,
			X1: x1, Y1: y1, X2: x2, Y2: y2,
		})
	}

	if e.session.state == SessionConnecting {
		if src, ok := e.nodes.Get(e.session.from.NodeID); ok {
			fx, fy := ConnectorPoint(src, e.session.from.Handle, true)
			x1, y1 := e.viewport.StageToScreen(fx, fy)
			state.Pending = &PendingConnection{
				From: e.session.from,
				X1:   x1, Y1: y1,
				X2: e.session.curX, Y2: e.session.curY,
			}
		}
	}

	return state
}

// SnapshotJSON serializes the render state, for bindings that speak
// strings (the wasm shell).
func (e *Engine) SnapshotJSON() string {
	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		return "{}"
	}
	return string(data)
}
