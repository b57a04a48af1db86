// Package pkg provides the core libraries for cgraph2dot.
//
// # Overview
//
// cgraph2dot turns the call-graph dumps GCC writes with -fdump-ipa-cgraph
// into a single Graphviz DOT graph. Each translation unit produces its own
// dump; the libraries merge them into one graph keyed by symbol name,
// optionally rename, keep, or remove symbols, and emit DOT plus optional
// SVG, PNG, PDF, JSON, and HTML renderings.
//
// # Architecture
//
// The data flow through cgraph2dot:
//
//	*.cgraph dump files
//	         ↓
//	    [dump] package (per-file symbol table records)
//	         ↓
//	    [callgraph] package (name-keyed graph, consolidation, diff)
//	         ↓
//	    [filter] package (rewrite → keep → removal → prune)
//	         ↓
//	    [render/dot] package (DOT text, Graphviz rendering)
//	         ↓
//	    DOT/SVG/PNG/PDF/JSON/HTML output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/cgraph2dot/pkg/callgraph"
//	    "github.com/matzehuels/cgraph2dot/pkg/dump"
//	    "github.com/matzehuels/cgraph2dot/pkg/filter"
//	    "github.com/matzehuels/cgraph2dot/pkg/render/dot"
//	)
//
//	// 1. Parse the dumps
//	a, _ := dump.ParseFile("build/main.c.000i.cgraph")
//	b, _ := dump.ParseFile("build/util.c.000i.cgraph")
//
//	// 2. Merge them into one graph
//	g := callgraph.Consolidate([]*dump.File{a, b})
//
//	// 3. Filter
//	cfg, _ := filter.LoadFile("filters.json", nil)
//	g, report := filter.Apply(g, cfg, filter.Options{})
//
//	// 4. Write DOT
//	_ = dot.WriteFile("callgraph.dot", g, dot.Options{})
//
// # Main Packages
//
// [dump] - Line-oriented state machine reading the "Initial Symbol table"
// region of one dump.
//
// [callgraph] - Name-keyed graph with symmetric Calls/CalledBy sets,
// consolidation of per-file records, and structural comparison.
//
// [filter] - Filter configuration loading (JSON or TOML) and the ordered
// rewrite, keep, and removal stages.
//
// [render/dot] - Deterministic DOT output, a reader for the DOT subset the
// writer produces, and Graphviz rendering to SVG, PNG, and PDF.
//
// [render/html] - Self-contained interactive HTML viewer.
//
// [render] - Format conversion helpers (SVG to PDF/PNG via rsvg-convert).
//
// [io] - JSON node-link import and export.
//
// [pipeline] - Complete conversion run (expand → parse → filter → emit)
// used by the CLI.
//
// [observability] - Hooks for instrumenting pipeline stages.
//
// [errors] - Structured error codes shared by the pipeline and the CLI.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/filter/...   # Specific package
//	go test -run Example       # Examples only
//
// [dump]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/dump
// [callgraph]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/callgraph
// [filter]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/filter
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/render/dot
// [render/html]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/render/html
// [render]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cgraph2dot/pkg/errors
package pkg
