package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
	"github.com/matzehuels/cgraph2dot/pkg/io"
	"github.com/matzehuels/cgraph2dot/pkg/render"
	"github.com/matzehuels/cgraph2dot/pkg/render/dot"
	"github.com/matzehuels/cgraph2dot/pkg/render/html"
)

// FormatDOT is the key of the primary output in [Result.Artifacts].
const FormatDOT = "dot"

// ArtifactPath returns where an extra format is written for output: the
// output path with a ".dot" extension replaced, or extended, by the format.
func ArtifactPath(output, format string) string {
	if strings.EqualFold(filepath.Ext(output), ".dot") {
		output = strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output + "." + format
}

// Render generates the extra artifacts for g in the requested formats.
// SVG is rendered once and shared by the png and pdf conversions.
func Render(ctx context.Context, g *callgraph.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	var svg []byte
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = dot.RenderSVG(ctx, dot.ToDOT(g, dot.Options{Styled: true}))
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = needSVG()
		case FormatPNG:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPNG(data, opts.Scale)
			}
		case FormatPDF:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatJSON:
			var buf bytes.Buffer
			err = io.WriteJSON(g, &buf)
			data = buf.Bytes()
		case FormatHTML:
			var buf bytes.Buffer
			err = html.Render(&buf, g, html.Options{Title: opts.Title})
			data = buf.Bytes()
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// writeArtifacts writes rendered artifacts next to output and returns the
// written paths keyed by format.
func writeArtifacts(output string, artifacts map[string][]byte, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(artifacts))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := ArtifactPath(output, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths[format] = path
	}
	return paths, nil
}
