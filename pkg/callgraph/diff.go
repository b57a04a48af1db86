package callgraph

import (
	"fmt"
	"strings"
)

// Difference is the structural difference between a reference graph and a
// generated graph. Node and edge order never matters.
type Difference struct {
	RefNodes, GenNodes int
	RefEdges, GenEdges int

	NodesOnlyInRef []string
	NodesOnlyInGen []string
	EdgesOnlyInRef []Edge
	EdgesOnlyInGen []Edge
}

// Diff compares ref and gen by node names and call edges.
func Diff(ref, gen *Graph) Difference {
	d := Difference{
		RefNodes: ref.NodeCount(),
		GenNodes: gen.NodeCount(),
		RefEdges: ref.EdgeCount(),
		GenEdges: gen.EdgeCount(),
	}
	for _, name := range ref.Names() {
		if !gen.Has(name) {
			d.NodesOnlyInRef = append(d.NodesOnlyInRef, name)
		}
	}
	for _, name := range gen.Names() {
		if !ref.Has(name) {
			d.NodesOnlyInGen = append(d.NodesOnlyInGen, name)
		}
	}
	for _, e := range ref.Edges() {
		if !gen.hasEdge(e) {
			d.EdgesOnlyInRef = append(d.EdgesOnlyInRef, e)
		}
	}
	for _, e := range gen.Edges() {
		if !ref.hasEdge(e) {
			d.EdgesOnlyInGen = append(d.EdgesOnlyInGen, e)
		}
	}
	return d
}

func (g *Graph) hasEdge(e Edge) bool {
	n, ok := g.nodes[e.From]
	return ok && n.Calls.Has(e.To)
}

// Equal reports whether the two graphs are structurally identical.
func (d Difference) Equal() bool {
	return len(d.NodesOnlyInRef) == 0 && len(d.NodesOnlyInGen) == 0 &&
		len(d.EdgesOnlyInRef) == 0 && len(d.EdgesOnlyInGen) == 0
}

// String renders a human-readable summary listing every difference.
func (d Difference) String() string {
	if d.Equal() {
		return "Graphs are structurally identical"
	}

	var b strings.Builder
	b.WriteString("Graphs differ:\n")
	fmt.Fprintf(&b, "  Reference: %d nodes, %d edges\n", d.RefNodes, d.RefEdges)
	fmt.Fprintf(&b, "  Generated: %d nodes, %d edges\n", d.GenNodes, d.GenEdges)
	b.WriteString("\nDifferences:\n")

	if len(d.NodesOnlyInRef) > 0 {
		b.WriteString("Nodes only in reference file:\n")
		for _, n := range d.NodesOnlyInRef {
			fmt.Fprintf(&b, "  - %s\n", n)
		}
	}
	if len(d.NodesOnlyInGen) > 0 {
		b.WriteString("Nodes only in generated file:\n")
		for _, n := range d.NodesOnlyInGen {
			fmt.Fprintf(&b, "  + %s\n", n)
		}
	}
	if len(d.EdgesOnlyInRef) > 0 {
		b.WriteString("Edges only in reference file:\n")
		for _, e := range d.EdgesOnlyInRef {
			fmt.Fprintf(&b, "  - %s -> %s\n", e.From, e.To)
		}
	}
	if len(d.EdgesOnlyInGen) > 0 {
		b.WriteString("Edges only in generated file:\n")
		for _, e := range d.EdgesOnlyInGen {
			fmt.Fprintf(&b, "  + %s -> %s\n", e.From, e.To)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
