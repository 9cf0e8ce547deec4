package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeStoreKeepsStackingOrder(t *testing.T) {
	s := NewNodeStore()
	for _, id := range []string{"a", "b", "c"} {
		s.Add(Node{ID: id, Width: 10, Height: 10})
	}

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[2].ID)
}

func TestNodeStoreRemovePreservesOrder(t *testing.T) {
	s := NewNodeStore()
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Add(Node{ID: id})
	}

	require.True(t, s.Remove("b"))
	assert.False(t, s.Remove("b"))

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"a", "c", "d"}, []string{all[0].ID, all[1].ID, all[2].ID})

	// Index stays consistent after the shift.
	d, ok := s.Get("d")
	require.True(t, ok)
	assert.Equal(t, "d", d.ID)
}

func TestNodeStoreReplace(t *testing.T) {
	s := NewNodeStore()
	s.Add(Node{ID: "a", X: 1, Y: 2, Width: 100, Height: 50})

	assert.True(t, s.Replace(Node{ID: "a", X: 10, Y: 20, Width: 100, Height: 50}))
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10.0, got.X)

	assert.False(t, s.Replace(Node{ID: "missing"}))
}

func TestNodeStoreAllReturnsCopy(t *testing.T) {
	s := NewNodeStore()
	s.Add(Node{ID: "a", X: 1})

	all := s.All()
	all[0].X = 999

	got, _ := s.Get("a")
	assert.Equal(t, 1.0, got.X)
}

func TestNodeStoreOthersExcludes(t *testing.T) {
	s := NewNodeStore()
	s.Add(Node{ID: "a"})
	s.Add(Node{ID: "b"})
	s.Add(Node{ID: "c"})

	others := s.Others("b")
	require.Len(t, others, 2)
	assert.Equal(t, "a", others[0].ID)
	assert.Equal(t, "c", others[1].ID)
}

func TestConnectionStoreHasMatchesExactPair(t *testing.T) {
	s := NewConnectionStore()
	from := Connector{NodeID: "a", Handle: HandleRight}
	to := Connector{NodeID: "b", Handle: HandleLeft}
	s.Add(Connection{ID: "c1", From: from, To: to})

	assert.True(t, s.Has(from, to))
	// Reversed direction is a different pair.
	assert.False(t, s.Has(to, from))
	// Same nodes, different handle.
	assert.False(t, s.Has(Connector{NodeID: "a", Handle: HandleTop}, to))
}

func TestConnectionStoreRemoveForNodeCascades(t *testing.T) {
	s := NewConnectionStore()
	s.Add(Connection{ID: "c1", From: Connector{NodeID: "a", Handle: HandleBottom}, To: Connector{NodeID: "b", Handle: HandleTop}})
	s.Add(Connection{ID: "c2", From: Connector{NodeID: "b", Handle: HandleBottom}, To: Connector{NodeID: "c", Handle: HandleTop}})
	s.Add(Connection{ID: "c3", From: Connector{NodeID: "c", Handle: HandleBottom}, To: Connector{NodeID: "d", Handle: HandleTop}})

	assert.Equal(t, 2, s.RemoveForNode("b"))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "c3", s.All()[0].ID)
}
