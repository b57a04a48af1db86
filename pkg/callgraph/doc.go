// Package callgraph provides the name-keyed call graph that cgraph2dot
// builds from compiler dumps, filters, and emits.
//
// # Overview
//
// A dump file identifies symbols by file-local "name/ordinal" identifiers
// (see package dump). Once every file is parsed, [Consolidate] resolves
// those identifiers and collapses all instances that share a display name
// into a single [Node]. The graph is name-oriented from then on: a static
// function compiled into three translation units is one node.
//
// # Structure
//
// Each [Node] carries two sets, Calls and CalledBy. Consolidation mirrors
// every edge so that
//
//	a.Calls contains b  <=>  b.CalledBy contains a
//
// holds. Unlike a DAG, call graphs may contain cycles (recursion, mutual
// recursion); nothing here rejects them.
//
// # Closure
//
// Filtering can remove nodes that other nodes still reference. [Graph.Prune]
// drops every edge endpoint that does not name a node in the graph, and
// [Graph.Validate] reports [ErrDanglingEdge] when a graph is not closed.
// Emitted graphs are always closed.
//
// # Comparison
//
// [Diff] compares two graphs structurally (node names and call edges,
// ignoring order), which is how generated DOT files are checked against
// reference output.
//
// # Concurrency
//
// Graph is not safe for concurrent modification. Stages of the pipeline hand
// each other fresh graphs; use [Graph.Clone] before mutating a shared one.
package callgraph
