// Package html renders a call graph as a self-contained interactive page.
//
// The page uses vis-network (loaded from unpkg) with a hierarchical layout
// and offers search, filtering by [Group], collapsing a node's callees on
// double-click, and PNG export. Nodes are colored by group:
//
//   - [GroupModule]: Fortran module procedures (__mod_ prefix)
//   - [GroupRuntime]: gfortran runtime and allocator calls
//   - [GroupEntry]: program entry points and common math functions
//   - [GroupUser]: everything else
//
// Usage:
//
//	g, err := dot.ParseFile("callgraph.dot")
//	err = html.WriteFile("callgraph.html", g, html.Options{Title: "solver"})
package html
