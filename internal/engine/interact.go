package engine

import "math"

// SessionState is the interaction state machine's current mode. Exactly
// one is active at a time; every session ends back at SessionIdle.
type SessionState string

const (
	SessionIdle       SessionState = "idle"
	SessionPanning    SessionState = "panning"
	SessionDragging   SessionState = "draggingNode"
	SessionResizing   SessionState = "resizingNode"
	SessionConnecting SessionState = "connectingEdge"
)

// session carries the snapshot taken at pointer-down that move handlers
// compute their deltas against. Deltas are always taken from the start
// snapshot, never accumulated, so many small moves cannot drift.
type session struct {
	state SessionState

	startX, startY       float64 // pointer-down position, screen space
	startPanX, startPanY float64

	nodeID    string
	startNode Node
	resize    ResizeHandle

	from       Connector // connect source
	curX, curY float64   // latest pointer position while connecting
}

// PointerDown starts an interaction session based on what the pointer
// landed on. A down event while a session is already active is ignored;
// the platform delivers pointer events serially, so this only happens if
// a collaborator misbehaves.
func (e *Engine) PointerDown(sx, sy float64) {
	if badCoord(sx, sy) || e.session.state != SessionIdle {
		return
	}

	hit := e.ClassifyHit(sx, sy)
	switch hit.Kind {
	case HitConnectorHandle:
		e.session = session{
			state:  SessionConnecting,
			startX: sx, startY: sy,
			curX: sx, curY: sy,
			from: Connector{NodeID: hit.NodeID, Handle: hit.Handle},
		}

	case HitResizeHandle:
		n, ok := e.nodes.Get(hit.NodeID)
		if !ok {
			return
		}
		e.session = session{
			state:  SessionResizing,
			startX: sx, startY: sy,
			nodeID:    n.ID,
			startNode: n,
			resize:    hit.Resize,
		}

	case HitNodeBody:
		if hit.NodeID != e.selectedNodeID {
			// First press selects only; dragging requires a second
			// press on the already-selected node.
			e.selectedNodeID = hit.NodeID
			return
		}
		n, ok := e.nodes.Get(hit.NodeID)
		if !ok {
			return
		}
		e.selectedNodeID = n.ID
		e.session = session{
			state:  SessionDragging,
			startX: sx, startY: sy,
			nodeID:    n.ID,
			startNode: n,
		}

	case HitBackground:
		e.selectedNodeID = ""
		e.session = session{
			state:  SessionPanning,
			startX: sx, startY: sy,
			startPanX: e.viewport.PanX,
			startPanY: e.viewport.PanY,
		}
	}
}

// PointerMove updates the active session's geometry. Snapping applies to
// drag and resize.
func (e *Engine) PointerMove(sx, sy float64) {
	if badCoord(sx, sy) {
		return
	}

	switch e.session.state {
	case SessionPanning:
		e.viewport.PanX = e.session.startPanX + (sx - e.session.startX)
		e.viewport.PanY = e.session.startPanY + (sy - e.session.startY)

	case SessionDragging:
		dx := (sx - e.session.startX) / e.viewport.Zoom
		dy := (sy - e.session.startY) / e.viewport.Zoom

		tentative := e.session.startNode
		tentative.X += dx
		tentative.Y += dy

		snapped, guides := snapDrag(tentative, e.nodes.Others(tentative.ID), e.opts.SnapThreshold)
		e.nodes.Replace(snapped)
		e.guides = guides

	case SessionResizing:
		dx := (sx - e.session.startX) / e.viewport.Zoom
		dy := (sy - e.session.startY) / e.viewport.Zoom

		geom := applyResize(e.session.startNode, e.session.resize, dx, dy)
		snapped, guides := snapResize(geom, e.session.resize, e.nodes.Others(geom.ID), e.opts.SnapThreshold)
		e.nodes.Replace(snapped)
		e.guides = guides

	case SessionConnecting:
		e.session.curX = sx
		e.session.curY = sy
	}
}

// PointerUp commits the active session and returns to idle. A connect
// session releasing on a connector handle of a different node emits a
// connection; anything else is discarded silently.
func (e *Engine) PointerUp(sx, sy float64) {
	if e.session.state == SessionConnecting && !badCoord(sx, sy) {
		hit := e.ClassifyHit(sx, sy)
		if hit.Kind == HitConnectorHandle && hit.NodeID != e.session.from.NodeID {
			e.AddConnection(e.session.from.NodeID, hit.NodeID, e.session.from.Handle, hit.Handle)
		}
	}

	e.guides = nil
	e.session = session{state: SessionIdle}
}

// PointerLeave is treated identically to PointerUp: sessions cannot be
// left dangling when the pointer exits the surface.
func (e *Engine) PointerLeave(sx, sy float64) {
	e.PointerUp(sx, sy)
}

// Wheel applies cursor-anchored zoom: the stage point under the cursor
// keeps its screen position. Any active snap guides are cleared.
func (e *Engine) Wheel(sx, sy, deltaY float64) {
	if badCoord(sx, sy) || math.IsNaN(deltaY) || math.IsInf(deltaY, 0) {
		return
	}

	e.guides = nil

	anchorX, anchorY := e.viewport.ScreenToStage(sx, sy)
	target := e.viewport.Zoom * (1 - deltaY*e.opts.WheelSensitivity)
	e.viewport = e.viewport.zoomedAt(e.clampZoom(target), anchorX, anchorY)
}

// SessionState returns the interaction mode currently active.
func (e *Engine) SessionState() SessionState {
	return e.session.state
}

// applyResize moves the edges controlled by the handle by the stage-space
// delta while the opposite edges stay fixed. Width and height clamp to
// the minimums; when a clamp fires, the position is recomputed so the
// fixed edge truly does not move.
func applyResize(start Node, handle ResizeHandle, dx, dy float64) Node {
	n := start

	if handle.movesLeft() {
		right := start.X + start.Width
		n.Width = max(start.Width-dx, MinNodeWidth)
		n.X = right - n.Width
	} else if handle.movesRight() {
		n.Width = max(start.Width+dx, MinNodeWidth)
	}

	if handle.movesTop() {
		bottom := start.Y + start.Height
		n.Height = max(start.Height-dy, MinNodeHeight)
		n.Y = bottom - n.Height
	} else if handle.movesBottom() {
		n.Height = max(start.Height+dy, MinNodeHeight)
	}

	return n
}

func badCoord(x, y float64) bool {
	return math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0)
}
