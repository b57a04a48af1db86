package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be an object with "nodes" and "edges" arrays. ReadJSON
// returns an error if the JSON is malformed, a node id is empty or
// duplicated, or an edge references an unknown node. Errors wrap the
// callgraph sentinel errors, so errors.Is works on them.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*callgraph.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := callgraph.New()
	for _, n := range data.Nodes {
		if err := g.AddNode(n.ID); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// ImportJSON reads the JSON graph file at path.
func ImportJSON(path string) (*callgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
