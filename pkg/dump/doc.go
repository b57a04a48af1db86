// Package dump parses GCC call-graph dump files into per-file symbol records.
//
// # Overview
//
// Compiling with -fdump-ipa-cgraph makes GCC write a text dump next to each
// object file. The dump lists every symbol of the translation unit together
// with its static callers and callees:
//
//	Initial Symbol table:
//
//	main/1 (main) @0x7f2c1a2b3c00
//	  Type: function definition analyzed
//	  Called by:
//	  Calls: util_add/0 (1.00 per call) printf/2 (1.00 per call)
//	util_add/0 (util_add) @0x7f2c1a2b3d00
//	  Called by: main/1 (1.00 per call)
//	  Calls:
//
//	Removing unused symbols: ...
//
// Only the "Initial Symbol table:" region is read. Parsing stops at the first
// "Removing unused symbols:" line because the dump repeats an optimized table
// after it that must not be merged in.
//
// # Identifiers
//
// Symbols are keyed by [SymbolID], the "name/ordinal" pair GCC prints. The
// ordinal is local to one dump file, so identifiers are only meaningful
// inside the [File] that produced them. Cross-file merging happens by name
// in package callgraph.
//
// # Usage
//
//	f, err := dump.ParseFile("build/main.c.000i.cgraph")
//	if err != nil {
//	    log.Warnf("skipping: %v", err)
//	}
//	for _, rec := range f.Records() {
//	    fmt.Println(rec.Name, len(rec.Calls))
//	}
package dump
