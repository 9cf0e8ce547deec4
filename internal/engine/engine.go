package engine

import (
	"encoding/json"
	"log/slog"
	"math"

	"github.com/cvaz1306/nexora/internal/typeid"
)

// Engine owns all mutable canvas state: the viewport, the node and
// connection stores, the selection, the interaction session and any
// transient snap guides. It processes pointer events and API calls
// synchronously on the calling goroutine; it is not safe for concurrent
// use and is not meant to be — every operation runs to completion before
// the next event arrives.
type Engine struct {
	opts Options

	viewport Viewport
	nodes    *NodeStore
	conns    *ConnectionStore

	selectedNodeID string
	session        session
	guides         []Guide

	surfaceW, surfaceH float64
	measured           bool
}

// New creates an engine with the given options. Unset option fields take
// the documented defaults.
func New(opts Options) *Engine {
	return &Engine{
		opts:     opts.normalized(),
		viewport: NewViewport(),
		nodes:    NewNodeStore(),
		conns:    NewConnectionStore(),
		session:  session{state: SessionIdle},
	}
}

// nodeProps is the only part of a creation payload the engine inspects:
// an optional width/height hint.
type nodeProps struct {
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

// AddNode creates a node at the given stage position and places it on
// top of the stacking order. Width and height come from the props hint
// when present, else the defaults; either way the minimums hold. The
// show-id flag is inherited from an existing node so a board keeps a
// uniform label style.
func (e *Engine) AddNode(kind NodeKind, x, y float64, props json.RawMessage) Node {
	if kind != NodeKindText && kind != NodeKindImage {
		slog.Debug("unknown node kind, defaulting to text", "kind", kind)
		kind = NodeKindText
	}
	if badCoord(x, y) {
		x, y = 0, 0
	}

	width, height := DefaultNodeWidth, DefaultNodeHeight
	if len(props) > 0 {
		var hint nodeProps
		if err := json.Unmarshal(props, &hint); err == nil {
			if hint.Width != nil && !math.IsNaN(*hint.Width) {
				width = *hint.Width
			}
			if hint.Height != nil && !math.IsNaN(*hint.Height) {
				height = *hint.Height
			}
		}
	}

	n := Node{
		ID:      typeid.NewNodeID(),
		Kind:    kind,
		X:       x,
		Y:       y,
		Width:   max(width, MinNodeWidth),
		Height:  max(height, MinNodeHeight),
		ShowID:  e.inheritShowID(),
		Payload: props,
	}
	e.nodes.Add(n)
	return n
}

func (e *Engine) inheritShowID() bool {
	all := e.nodes.All()
	if len(all) == 0 {
		return false
	}
	return all[0].ShowID
}

// AddConnection links two connector points. Empty handles default to
// bottom (source) and top (target). Missing node ids, identical ids and
// duplicate (from, to) pairs are rejected with a nil return; nothing is
// thrown.
func (e *Engine) AddConnection(fromID, toID string, fromHandle, toHandle Handle) *Connection {
	if !fromHandle.Valid() {
		fromHandle = HandleBottom
	}
	if !toHandle.Valid() {
		toHandle = HandleTop
	}

	if fromID == toID {
		slog.Debug("connection rejected: self-loop", "node", fromID)
		return nil
	}
	if _, ok := e.nodes.Get(fromID); !ok {
		slog.Debug("connection rejected: unknown source", "node", fromID)
		return nil
	}
	if _, ok := e.nodes.Get(toID); !ok {
		slog.Debug("connection rejected: unknown target", "node", toID)
		return nil
	}

	from := Connector{NodeID: fromID, Handle: fromHandle}
	to := Connector{NodeID: toID, Handle: toHandle}
	if e.conns.Has(from, to) {
		slog.Debug("connection rejected: duplicate", "from", fromID, "to", toID)
		return nil
	}

	c := Connection{ID: typeid.NewConnectionID(), From: from, To: to}
	e.conns.Add(c)
	return &c
}

// RemoveConnection removes the connection with the given id. Unknown ids
// are a no-op.
func (e *Engine) RemoveConnection(id string) bool {
	return e.conns.Remove(id)
}

// RemoveConnectionsForNode cascade-removes every connection touching the
// node and returns how many were removed.
func (e *Engine) RemoveConnectionsForNode(nodeID string) int {
	return e.conns.RemoveForNode(nodeID)
}

// RemoveNode deletes the node and cascades its connections. The
// selection clears if it pointed at the removed node.
func (e *Engine) RemoveNode(id string) bool {
	if !e.nodes.Remove(id) {
		return false
	}
	e.conns.RemoveForNode(id)
	if e.selectedNodeID == id {
		e.selectedNodeID = ""
	}
	return true
}

// Nodes returns the node list in stacking order.
func (e *Engine) Nodes() []Node {
	return e.nodes.All()
}

// Node returns a single node by id.
func (e *Engine) Node(id string) (Node, bool) {
	return e.nodes.Get(id)
}

// Connections returns the connection list in creation order.
func (e *Engine) Connections() []Connection {
	return e.conns.All()
}

// Guides returns the snap guide lines of the active drag or resize, if
// any.
func (e *Engine) Guides() []Guide {
	out := make([]Guide, len(e.guides))
	copy(out, e.guides)
	return out
}

// GetViewport returns the current viewport.
func (e *Engine) GetViewport() Viewport {
	return e.viewport
}

// SetSurfaceSize records the size of the visible surface in pixels.
// Center-relative operations degrade until the first call.
func (e *Engine) SetSurfaceSize(w, h float64) {
	if badCoord(w, h) || w < 0 || h < 0 {
		return
	}
	e.surfaceW, e.surfaceH = w, h
	e.measured = true
}

// GetStageCenterOfScreen returns the stage point currently at the center
// of the surface, or nil if the surface has not been measured yet.
func (e *Engine) GetStageCenterOfScreen() *Point {
	if !e.measured {
		return nil
	}
	x, y := e.viewport.ScreenToStage(e.surfaceW/2, e.surfaceH/2)
	return &Point{X: x, Y: y}
}

// PanTo pans so the target stage point lands at the center of the
// viewport. Before the surface is measured the center is taken as the
// screen origin.
func (e *Engine) PanTo(x, y float64) {
	if badCoord(x, y) {
		return
	}
	e.viewport.PanX = e.surfaceW/2 - x*e.viewport.Zoom
	e.viewport.PanY = e.surfaceH/2 - y*e.viewport.Zoom
}

// PanBy translates the viewport by a screen-space delta. Panning is
// unbounded; the canvas is conceptually infinite.
func (e *Engine) PanBy(dx, dy float64) {
	if badCoord(dx, dy) {
		return
	}
	e.viewport.PanX += dx
	e.viewport.PanY += dy
}

// SetZoom zooms to the target level anchored at the center of the
// visible viewport, so the content at the center stays put.
func (e *Engine) SetZoom(level float64) {
	if math.IsNaN(level) || math.IsInf(level, 0) {
		slog.Debug("ignoring non-finite zoom", "level", level)
		return
	}
	cx, cy := e.viewport.ScreenToStage(e.surfaceW/2, e.surfaceH/2)
	e.viewport = e.viewport.zoomedAt(e.clampZoom(level), cx, cy)
}

// SetZoomAt zooms to the target level keeping the given stage anchor at
// its current screen position.
func (e *Engine) SetZoomAt(level, anchorX, anchorY float64) {
	if math.IsNaN(level) || math.IsInf(level, 0) || badCoord(anchorX, anchorY) {
		return
	}
	e.viewport = e.viewport.zoomedAt(e.clampZoom(level), anchorX, anchorY)
}

func (e *Engine) clampZoom(z float64) float64 {
	return min(max(z, e.opts.MinZoom), e.opts.MaxZoom)
}

// ResetView restores the identity viewport: origin pan, zoom 1.
func (e *Engine) ResetView() {
	e.viewport = NewViewport()
}

// Clear empties both stores and drops the selection and any guides. The
// viewport is untouched.
func (e *Engine) Clear() {
	e.nodes.Clear()
	e.conns.Clear()
	e.selectedNodeID = ""
	e.guides = nil
	e.session = session{state: SessionIdle}
}

// Arrange computes a grid layout for the current nodes and connections
// and re-centers the viewport on the result. A non-finite or negative
// padding falls back to the configured default. Node and connection
// counts never change; only positions do.
func (e *Engine) Arrange(padding float64) {
	if math.IsNaN(padding) || math.IsInf(padding, 0) || padding < 0 {
		padding = e.opts.ArrangePadding
	}
	if e.nodes.Len() == 0 {
		return
	}

	arranged := arrangeNodes(e.nodes.All(), e.conns.All(), padding, e.opts.Rand)
	for _, n := range arranged {
		e.nodes.Replace(n)
	}

	bbox := arranged[0].Bounds()
	for _, n := range arranged[1:] {
		bbox = bbox.Union(n.Bounds())
	}
	cx, cy := bbox.Center()
	e.PanTo(cx, cy)
}

// SelectedNodeID returns the selected node id, or "" when nothing is
// selected.
func (e *Engine) SelectedNodeID() string {
	return e.selectedNodeID
}

// SetSelectedNodeID sets the selection. Unknown ids clear it.
func (e *Engine) SetSelectedNodeID(id string) {
	if id == "" {
		e.selectedNodeID = ""
		return
	}
	if _, ok := e.nodes.Get(id); !ok {
		e.selectedNodeID = ""
		return
	}
	e.selectedNodeID = id
}
