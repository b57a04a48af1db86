// Package render provides format conversion for rendered call graphs.
//
// # Overview
//
// Call graphs are emitted as Graphviz DOT by the [dot] subpackage and can be
// rendered to SVG in-process. This package turns that SVG into PDF or PNG
// using the external rsvg-convert tool (from librsvg):
//
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(g, dot.Options{Styled: true}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// The [html] subpackage produces a self-contained interactive viewer.
//
// [dot]: github.com/matzehuels/cgraph2dot/pkg/render/dot
// [html]: github.com/matzehuels/cgraph2dot/pkg/render/html
package render
