// Package dot writes and reads call graphs as Graphviz DOT.
//
// # Output
//
// [ToDOT] produces one boxed node statement per symbol and one edge
// statement per call, both sorted, so the same graph always yields the same
// bytes:
//
//	digraph callgraph {
//	  node [shape=box];
//
//	  "helper" [label="helper"];
//	  "main" [label="main"];
//
//	  "main" -> "helper";
//	}
//
// Backslashes and double quotes in symbol names are escaped. With
// [Options.Styled] the header carries layout attributes suited to
// [RenderSVG].
//
// # Input
//
// [Parse] reads back files in that shape: quoted node statements and quoted
// edge statements, one per line. Edge endpoints without a node statement
// are declared implicitly, as Graphviz does. It is not a general DOT parser.
//
// # Rendering
//
// [RenderSVG] renders DOT in-process with [github.com/goccy/go-graphviz].
// PDF and PNG conversion lives in the parent render package and requires
// librsvg (rsvg-convert).
package dot
