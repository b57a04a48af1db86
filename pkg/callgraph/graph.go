package callgraph

import (
	"cmp"
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeName is returned by [Graph.AddNode] when the name is empty.
	ErrInvalidNodeName = errors.New("node name must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the
	// same name already exists.
	ErrDuplicateNode = errors.New("duplicate node name")

	// ErrUnknownCaller is returned by [Graph.AddEdge] when the caller node
	// does not exist.
	ErrUnknownCaller = errors.New("unknown caller node")

	// ErrUnknownCallee is returned by [Graph.AddEdge] when the callee node
	// does not exist.
	ErrUnknownCallee = errors.New("unknown callee node")

	// ErrDanglingEdge is returned by [Graph.Validate] when an edge endpoint
	// names a node that is not in the graph.
	ErrDanglingEdge = errors.New("edge references unknown node")

	// ErrAsymmetricEdge is returned by [Graph.Validate] when a call edge is
	// recorded on one endpoint only.
	ErrAsymmetricEdge = errors.New("edge recorded on one endpoint only")
)

// Set is an unordered set of node names.
type Set map[string]struct{}

// NewSet returns a set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name into the set.
func (s Set) Add(name string) { s[name] = struct{}{} }

// Has reports whether name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string { return slices.Sorted(maps.Keys(s)) }

// Clone returns an independent copy of the set. The clone is never nil.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// Node is a call graph vertex keyed by symbol display name.
type Node struct {
	Name     string
	Calls    Set // callee names
	CalledBy Set // caller names
}

// Edge is one caller -> callee relationship.
type Edge struct {
	From string
	To   string
}

// Graph maps symbol names to nodes.
//
// The zero value is not usable - use [New]. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	nodes map[string]*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds an isolated node. Returns ErrInvalidNodeName for an empty
// name or ErrDuplicateNode if the name is taken.
func (g *Graph) AddNode(name string) error {
	if name == "" {
		return ErrInvalidNodeName
	}
	if _, exists := g.nodes[name]; exists {
		return ErrDuplicateNode
	}
	g.nodes[name] = newNode(name)
	return nil
}

// Upsert returns the node for name, creating it if needed.
func (g *Graph) Upsert(name string) *Node {
	if n, ok := g.nodes[name]; ok {
		return n
	}
	n := newNode(name)
	g.nodes[name] = n
	return n
}

func newNode(name string) *Node {
	return &Node{Name: name, Calls: Set{}, CalledBy: Set{}}
}

// AddEdge records that from calls to, on both endpoints. Both nodes must
// exist. Adding an existing edge is a no-op.
func (g *Graph) AddEdge(from, to string) error {
	src, ok := g.nodes[from]
	if !ok {
		return ErrUnknownCaller
	}
	dst, ok := g.nodes[to]
	if !ok {
		return ErrUnknownCallee
	}
	src.Calls.Add(to)
	dst.CalledBy.Add(from)
	return nil
}

// Node returns the node named name and true, or nil and false if absent.
// The returned pointer refers to the node in the graph.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Has reports whether a node named name exists.
func (g *Graph) Has(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Remove deletes the node named name. Edges that point at it from other
// nodes are left in place; call [Graph.Prune] afterwards.
func (g *Graph) Remove(name string) {
	delete(g.nodes, name)
}

// Names returns all node names in ascending order.
func (g *Graph) Names() []string { return slices.Sorted(maps.Keys(g.nodes)) }

// Nodes returns all nodes sorted by name.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, name := range g.Names() {
		out = append(out, g.nodes[name])
	}
	return out
}

// Edges returns every caller -> callee pair drawn from the Calls sets,
// sorted by caller then callee.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		for to := range n.Calls {
			edges = append(edges, Edge{From: n.Name, To: to})
		}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
	return edges
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of caller -> callee pairs in the Calls sets.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.Calls)
	}
	return total
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	out := &Graph{nodes: make(map[string]*Node, len(g.nodes))}
	for name, n := range g.nodes {
		out.nodes[name] = &Node{Name: name, Calls: n.Calls.Clone(), CalledBy: n.CalledBy.Clone()}
	}
	return out
}

// Equal reports whether both graphs have the same nodes with the same
// Calls and CalledBy sets.
func (g *Graph) Equal(other *Graph) bool {
	if len(g.nodes) != len(other.nodes) {
		return false
	}
	for name, n := range g.nodes {
		o, ok := other.nodes[name]
		if !ok || !maps.Equal(n.Calls, o.Calls) || !maps.Equal(n.CalledBy, o.CalledBy) {
			return false
		}
	}
	return true
}

// Prune drops every Calls or CalledBy entry that does not name a node in
// the graph and returns how many entries were dropped.
func (g *Graph) Prune() int {
	dropped := 0
	for _, n := range g.nodes {
		dropped += g.pruneSet(n.Calls)
		dropped += g.pruneSet(n.CalledBy)
	}
	return dropped
}

func (g *Graph) pruneSet(s Set) int {
	dropped := 0
	for name := range s {
		if _, ok := g.nodes[name]; !ok {
			delete(s, name)
			dropped++
		}
	}
	return dropped
}

// Validate checks that every edge endpoint names a node in the graph and
// that each call edge is recorded on both endpoints. Returns
// ErrDanglingEdge or ErrAsymmetricEdge on the first violation.
func (g *Graph) Validate() error {
	for _, n := range g.nodes {
		for to := range n.Calls {
			dst, ok := g.nodes[to]
			if !ok {
				return ErrDanglingEdge
			}
			if !dst.CalledBy.Has(n.Name) {
				return ErrAsymmetricEdge
			}
		}
		for from := range n.CalledBy {
			src, ok := g.nodes[from]
			if !ok {
				return ErrDanglingEdge
			}
			if !src.Calls.Has(n.Name) {
				return ErrAsymmetricEdge
			}
		}
	}
	return nil
}
