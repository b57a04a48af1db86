package callgraph

import "github.com/matzehuels/cgraph2dot/pkg/dump"

// ConsolidateOptions configures [ConsolidateWith].
type ConsolidateOptions struct {
	// OnCollision is called when two files declare the same identifier with
	// different display names. The later declaration wins.
	OnCollision func(id dump.SymbolID, previous, current string)
}

// Consolidate merges the per-file parse results into one name-keyed graph.
// See [ConsolidateWith].
func Consolidate(files []*dump.File) *Graph {
	return ConsolidateWith(files, ConsolidateOptions{})
}

// ConsolidateWith merges the per-file parse results into one name-keyed
// graph.
//
// A global identifier -> name lookup is built over every record of every
// file first. Each record then contributes a node for its name, and each
// Calls / CalledBy identifier that resolves in the lookup contributes an
// edge, recorded on both endpoints. Identifiers without a table entry in
// any file are dropped. Nil files are skipped.
func ConsolidateWith(files []*dump.File, opts ConsolidateOptions) *Graph {
	lookup := make(map[dump.SymbolID]string)
	for _, f := range files {
		for _, rec := range f.Records() {
			if prev, ok := lookup[rec.ID]; ok && prev != rec.Name && opts.OnCollision != nil {
				opts.OnCollision(rec.ID, prev, rec.Name)
			}
			lookup[rec.ID] = rec.Name
		}
	}

	g := New()
	for _, f := range files {
		for _, rec := range f.Records() {
			g.Upsert(rec.Name)
		}
	}

	for _, f := range files {
		for _, rec := range f.Records() {
			for _, id := range rec.CalledBy {
				if caller, ok := lookup[id]; ok {
					_ = g.AddEdge(caller, rec.Name)
				}
			}
			for _, id := range rec.Calls {
				if callee, ok := lookup[id]; ok {
					_ = g.AddEdge(rec.Name, callee)
				}
			}
		}
	}
	return g
}
