package engine

// NodeStore is the ordered collection of nodes and the single source of
// truth for geometry. Later entries render on top of earlier ones.
//
// Mutations always substitute whole Node values so a reader holding a
// slice from All sees a consistent snapshot.
type NodeStore struct {
	nodes []Node
	index map[string]int // id -> position in nodes
}

func NewNodeStore() *NodeStore {
	return &NodeStore{
		index: make(map[string]int),
	}
}

// Add appends the node at the top of the stacking order.
func (s *NodeStore) Add(n Node) {
	s.index[n.ID] = len(s.nodes)
	s.nodes = append(s.nodes, n)
}

// Get returns the node and whether it exists.
func (s *NodeStore) Get(id string) (Node, bool) {
	i, ok := s.index[id]
	if !ok {
		return Node{}, false
	}
	return s.nodes[i], true
}

// Replace substitutes the stored record for n.ID wholesale. Unknown ids
// are ignored.
func (s *NodeStore) Replace(n Node) bool {
	i, ok := s.index[n.ID]
	if !ok {
		return false
	}
	s.nodes[i] = n
	return true
}

// Remove deletes the node, preserving the order of the rest.
func (s *NodeStore) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.nodes); j++ {
		s.index[s.nodes[j].ID] = j
	}
	return true
}

// All returns a copy of the node list in stacking order.
func (s *NodeStore) All() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Others returns a copy of the node list excluding the given id. Used as
// the reference set for snapping.
func (s *NodeStore) Others(excludeID string) []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		if n.ID != excludeID {
			out = append(out, n)
		}
	}
	return out
}

func (s *NodeStore) Len() int {
	return len(s.nodes)
}

func (s *NodeStore) Clear() {
	s.nodes = nil
	s.index = make(map[string]int)
}

// ConnectionStore holds the directed links between connector points.
type ConnectionStore struct {
	conns []Connection
}

func NewConnectionStore() *ConnectionStore {
	return &ConnectionStore{}
}

// Add appends the connection. Validation happens in the engine, which
// knows which node ids exist.
func (s *ConnectionStore) Add(c Connection) {
	s.conns = append(s.conns, c)
}

// Has reports whether an identical (from, to) pair already exists.
func (s *ConnectionStore) Has(from, to Connector) bool {
	for _, c := range s.conns {
		if c.From == from && c.To == to {
			return true
		}
	}
	return false
}

// Remove deletes the connection with the given id.
func (s *ConnectionStore) Remove(id string) bool {
	for i, c := range s.conns {
		if c.ID == id {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveForNode cascade-removes every connection touching the node and
// returns how many were removed.
func (s *ConnectionStore) RemoveForNode(nodeID string) int {
	kept := s.conns[:0]
	removed := 0
	for _, c := range s.conns {
		if c.From.NodeID == nodeID || c.To.NodeID == nodeID {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	s.conns = kept
	return removed
}

// All returns a copy of the connection list in creation order.
func (s *ConnectionStore) All() []Connection {
	out := make([]Connection, len(s.conns))
	copy(out, s.conns)
	return out
}

func (s *ConnectionStore) Len() int {
	return len(s.conns)
}

func (s *ConnectionStore) Clear() {
	s.conns = nil
}
