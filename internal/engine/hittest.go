package engine

import "math"

// HitKind classifies what a screen point lands on.
type HitKind string

const (
	HitBackground      HitKind = "background"
	HitNodeBody        HitKind = "nodeBody"
	HitResizeHandle    HitKind = "resizeHandle"
	HitConnectorHandle HitKind = "connectorHandle"
)

// ResizeHandle names one of the eight resize affordances on the selected
// node. Corners move both axes, edges one.
type ResizeHandle string

const (
	ResizeTopLeft     ResizeHandle = "tl"
	ResizeTopRight    ResizeHandle = "tr"
	ResizeBottomLeft  ResizeHandle = "bl"
	ResizeBottomRight ResizeHandle = "br"
	ResizeTop         ResizeHandle = "t"
	ResizeBottom      ResizeHandle = "b"
	ResizeLeft        ResizeHandle = "l"
	ResizeRight       ResizeHandle = "r"
)

func (h ResizeHandle) movesLeft() bool {
	return h == ResizeTopLeft || h == ResizeBottomLeft || h == ResizeLeft
}

func (h ResizeHandle) movesRight() bool {
	return h == ResizeTopRight || h == ResizeBottomRight || h == ResizeRight
}

func (h ResizeHandle) movesTop() bool {
	return h == ResizeTopLeft || h == ResizeTopRight || h == ResizeTop
}

func (h ResizeHandle) movesBottom() bool {
	return h == ResizeBottomLeft || h == ResizeBottomRight || h == ResizeBottom
}

// Valid reports whether h names a known resize handle.
func (h ResizeHandle) Valid() bool {
	switch h {
	case ResizeTopLeft, ResizeTopRight, ResizeBottomLeft, ResizeBottomRight,
		ResizeTop, ResizeBottom, ResizeLeft, ResizeRight:
		return true
	}
	return false
}

// Hit is the result of classifying a pointer-down location. It is the
// only input the interaction state machine needs about the scene under
// the pointer.
type Hit struct {
	Kind   HitKind
	NodeID string
	Resize ResizeHandle // set when Kind == HitResizeHandle
	Handle Handle       // set when Kind == HitConnectorHandle
}

// Hit affordance tolerances in screen pixels. Affordances keep a
// constant on-screen size regardless of zoom.
const (
	connectorHitRadius = 10.0
	resizeHitRadius    = 8.0
)

// ClassifyHit determines what the screen point lands on, scanning nodes
// top to bottom. Per node, connector handles take precedence over resize
// handles, which take precedence over the body; resize handles are only
// live on the currently selected node.
func (e *Engine) ClassifyHit(sx, sy float64) Hit {
	nodes := e.nodes.All()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]

		if h, ok := e.hitConnector(n, sx, sy); ok {
			return Hit{Kind: HitConnectorHandle, NodeID: n.ID, Handle: h}
		}
		if n.ID == e.selectedNodeID {
			if h, ok := e.hitResize(n, sx, sy); ok {
				return Hit{Kind: HitResizeHandle, NodeID: n.ID, Resize: h}
			}
		}

		x, y := e.viewport.ScreenToStage(sx, sy)
		if n.Bounds().Contains(x, y) {
			return Hit{Kind: HitNodeBody, NodeID: n.ID}
		}
	}
	return Hit{Kind: HitBackground}
}

func (e *Engine) hitConnector(n Node, sx, sy float64) (Handle, bool) {
	for _, h := range Handles {
		hx, hy := handleMidpoint(n, h)
		px, py := e.viewport.StageToScreen(hx, hy)
		if math.Hypot(sx-px, sy-py) <= connectorHitRadius {
			return h, true
		}
	}
	return "", false
}

func (e *Engine) hitResize(n Node, sx, sy float64) (ResizeHandle, bool) {
	x0, y0 := e.viewport.StageToScreen(n.X, n.Y)
	x1, y1 := e.viewport.StageToScreen(n.X+n.Width, n.Y+n.Height)
	cx, cy := (x0+x1)/2, (y0+y1)/2

	points := []struct {
		handle ResizeHandle
		x, y   float64
	}{
		{ResizeTopLeft, x0, y0},
		{ResizeTopRight, x1, y0},
		{ResizeBottomLeft, x0, y1},
		{ResizeBottomRight, x1, y1},
		{ResizeTop, cx, y0},
		{ResizeBottom, cx, y1},
		{ResizeLeft, x0, cy},
		{ResizeRight, x1, cy},
	}
	for _, p := range points {
		if math.Abs(sx-p.x) <= resizeHitRadius && math.Abs(sy-p.y) <= resizeHitRadius {
			return p.handle, true
		}
	}
	return "", false
}
