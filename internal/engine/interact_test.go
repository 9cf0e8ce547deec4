package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addTestNode inserts a node with exact geometry, bypassing AddNode's
// hint parsing.
func addTestNode(e *Engine, id string, x, y, w, h float64) Node {
	n := Node{ID: id, Kind: NodeKindText, X: x, Y: y, Width: w, Height: h}
	e.nodes.Add(n)
	return n
}

func TestClassifyHit(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 100, 100, 100)
	e.SetSelectedNodeID("a")

	tests := []struct {
		name string
		x, y float64
		want Hit
	}{
		{"background", 500, 500, Hit{Kind: HitBackground}},
		{"node body", 150, 150, Hit{Kind: HitNodeBody, NodeID: "a"}},
		{"connector top", 150, 100, Hit{Kind: HitConnectorHandle, NodeID: "a", Handle: HandleTop}},
		{"connector right", 200, 150, Hit{Kind: HitConnectorHandle, NodeID: "a", Handle: HandleRight}},
		{"resize corner", 200, 200, Hit{Kind: HitResizeHandle, NodeID: "a", Resize: ResizeBottomRight}},
		{"resize top-left corner", 100, 100, Hit{Kind: HitResizeHandle, NodeID: "a", Resize: ResizeTopLeft}},
		// On the left edge between the connector and the corner,
		// neither affordance is within tolerance; it is just body.
		{"left edge between affordances", 100, 150 + connectorHitRadius + 2, Hit{Kind: HitNodeBody, NodeID: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ClassifyHit(tt.x, tt.y))
		})
	}
}

func TestClassifyHitTopmostWins(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "under", 100, 100, 100, 100)
	addTestNode(e, "over", 150, 150, 100, 100) // added later, renders on top

	hit := e.ClassifyHit(160, 160)
	assert.Equal(t, HitNodeBody, hit.Kind)
	assert.Equal(t, "over", hit.NodeID)
}

func TestClassifyHitResizeOnlyOnSelected(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 100, 100, 100)

	// Unselected: the corner is just the body.
	hit := e.ClassifyHit(200, 200)
	assert.Equal(t, HitNodeBody, hit.Kind)

	e.SetSelectedNodeID("a")
	hit = e.ClassifyHit(200, 200)
	assert.Equal(t, HitResizeHandle, hit.Kind)
}

func TestFirstPressSelectsSecondPressDrags(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 100, 100, 100)

	// First press on the body selects but starts no session.
	e.PointerDown(150, 150)
	assert.Equal(t, "a", e.SelectedNodeID())
	assert.Equal(t, SessionIdle, e.SessionState())
	e.PointerUp(150, 150)

	// Second press starts the drag.
	e.PointerDown(150, 150)
	assert.Equal(t, SessionDragging, e.SessionState())

	e.PointerMove(180, 190)
	n, _ := e.Node("a")
	assert.Equal(t, 130.0, n.X)
	assert.Equal(t, 140.0, n.Y)

	e.PointerUp(180, 190)
	assert.Equal(t, SessionIdle, e.SessionState())
}

func TestDragPreservesSize(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 100, 120, 80)
	e.SetSelectedNodeID("a")

	e.PointerDown(150, 150)
	for i := 0; i < 20; i++ {
		e.PointerMove(150+float64(i)*7, 150-float64(i)*3)
	}
	e.PointerUp(283, 93)

	n, _ := e.Node("a")
	assert.Equal(t, 120.0, n.Width)
	assert.Equal(t, 80.0, n.Height)
}

func TestDragComputesFromStartNotIncrementally(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 0, 0, 100, 100)
	e.SetSelectedNodeID("a")

	e.PointerDown(50, 50)
	// Many tiny moves ending at the same place as one big move.
	for i := 1; i <= 100; i++ {
		e.PointerMove(50+float64(i)*0.37, 50)
	}
	e.PointerMove(87, 50)
	e.PointerUp(87, 50)

	n, _ := e.Node("a")
	assert.Equal(t, 37.0, n.X)
	assert.Equal(t, 0.0, n.Y)
}

func TestDragDeltaScalesWithZoom(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 0, 0, 100, 100)
	e.SetSelectedNodeID("a")
	e.SetZoomAt(2, 0, 0) // pan stays (0,0)

	// Node body at stage (25,25) is screen (50,50).
	e.PointerDown(50, 50)
	require.Equal(t, SessionDragging, e.SessionState())
	e.PointerMove(90, 50) // 40 screen px = 20 stage units
	e.PointerUp(90, 50)

	n, _ := e.Node("a")
	assert.Equal(t, 20.0, n.X)
}

func TestPanSessionDeselects(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 100, 100, 100)
	e.SetSelectedNodeID("a")

	e.PointerDown(600, 600)
	assert.Equal(t, SessionPanning, e.SessionState())
	assert.Equal(t, "", e.SelectedNodeID())

	e.PointerMove(650, 580)
	v := e.GetViewport()
	assert.Equal(t, 50.0, v.PanX)
	assert.Equal(t, -20.0, v.PanY)

	e.PointerUp(650, 580)
	assert.Equal(t, SessionIdle, e.SessionState())
}

func TestResizeRespectsMinimum(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 100, 100, 100)
	e.SetSelectedNodeID("a")

	// Grab the bottom-right corner and push far past the top-left.
	e.PointerDown(200, 200)
	require.Equal(t, SessionResizing, e.SessionState())
	e.PointerMove(0, 0)
	e.PointerUp(0, 0)

	n, _ := e.Node("a")
	assert.Equal(t, MinNodeWidth, n.Width)
	assert.Equal(t, MinNodeHeight, n.Height)
	// Fixed edges (top-left) must not have moved.
	assert.Equal(t, 100.0, n.X)
	assert.Equal(t, 100.0, n.Y)
}

func TestResizeLeftHandleKeepsRightEdgeFixed(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 200, 100, 100)
	e.SetSelectedNodeID("a")

	// Left edge handle sits below the left connector.
	e.PointerDown(100, 200) // top-left corner handle
	require.Equal(t, SessionResizing, e.SessionState())

	// Push right past the minimum: width clamps, x derives from the
	// fixed right edge.
	e.PointerMove(300, 200)
	e.PointerUp(300, 200)

	n, _ := e.Node("a")
	assert.Equal(t, MinNodeWidth, n.Width)
	assert.Equal(t, 200.0-MinNodeWidth, n.X) // right edge still at 200
}

func TestResizeGrowsFromCorner(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 100, 100, 100)
	e.SetSelectedNodeID("a")

	e.PointerDown(200, 200)
	e.PointerMove(240, 230)
	e.PointerUp(240, 230)

	n, _ := e.Node("a")
	assert.Equal(t, 140.0, n.Width)
	assert.Equal(t, 130.0, n.Height)
	assert.Equal(t, 100.0, n.X)
	assert.Equal(t, 100.0, n.Y)
}

func TestConnectGestureCreatesConnection(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 0, 0, 100, 100)
	addTestNode(e, "b", 300, 0, 100, 100)

	// Press A's right connector, release on B's left connector.
	e.PointerDown(100, 50)
	require.Equal(t, SessionConnecting, e.SessionState())
	e.PointerMove(200, 50)
	e.PointerUp(300, 50)

	conns := e.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, Connector{NodeID: "a", Handle: HandleRight}, conns[0].From)
	assert.Equal(t, Connector{NodeID: "b", Handle: HandleLeft}, conns[0].To)
	assert.Equal(t, SessionIdle, e.SessionState())
}

func TestConnectReleaseOnSameNodeDiscards(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 0, 0, 100, 100)

	e.PointerDown(100, 50) // right connector
	e.PointerUp(50, 0)     // top connector of the same node
	assert.Empty(t, e.Connections())
}

func TestConnectReleaseOnBackgroundDiscards(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 0, 0, 100, 100)
	addTestNode(e, "b", 300, 0, 100, 100)

	e.PointerDown(100, 50)
	e.PointerUp(600, 600)
	assert.Empty(t, e.Connections())
}

func TestPointerLeaveEndsSession(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 100, 100, 100)
	e.SetSelectedNodeID("a")

	e.PointerDown(150, 150)
	require.Equal(t, SessionDragging, e.SessionState())

	e.PointerLeave(150, 150)
	assert.Equal(t, SessionIdle, e.SessionState())
	assert.Empty(t, e.Guides())
}

func TestSessionsAreMutuallyExclusive(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 100, 100, 100, 100)
	e.SetSelectedNodeID("a")

	e.PointerDown(150, 150)
	require.Equal(t, SessionDragging, e.SessionState())

	// A second down while a session is active must not switch modes.
	e.PointerDown(600, 600)
	assert.Equal(t, SessionDragging, e.SessionState())

	e.PointerUp(150, 150)
	assert.Equal(t, SessionIdle, e.SessionState())
}

func TestDragSnapEmitsGuidesAndUpEnds(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 0, 0, 100, 100)
	addTestNode(e, "b", 300, 300, 100, 100)
	e.SetSelectedNodeID("b")

	e.PointerDown(350, 350)
	// Move B so its left edge lands 5 units from A's right edge and its
	// top 2 units from A's top.
	e.PointerMove(155, 52)

	n, _ := e.Node("b")
	assert.Equal(t, 100.0, n.X)
	assert.Equal(t, 0.0, n.Y)
	assert.Len(t, e.Guides(), 2)

	e.PointerUp(155, 52)
	assert.Empty(t, e.Guides())
}

func TestWheelClearsGuides(t *testing.T) {
	e := New(DefaultOptions())
	addTestNode(e, "a", 0, 0, 100, 100)
	addTestNode(e, "b", 300, 300, 100, 100)
	e.SetSelectedNodeID("b")

	e.PointerDown(350, 350)
	e.PointerMove(155, 52)
	require.NotEmpty(t, e.Guides())

	e.Wheel(400, 400, -100)
	assert.Empty(t, e.Guides())
}
