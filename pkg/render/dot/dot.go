package dot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
)

// DefaultName is the graph name used when [Options.Name] is empty.
const DefaultName = "callgraph"

// Options configures DOT generation.
type Options struct {
	// Name is the digraph identifier. Defaults to [DefaultName].
	Name string
	// Styled adds layout and node styling for rendering. When false only
	// the box shape is set.
	Styled bool
}

// ToDOT converts a call graph to DOT source.
func ToDOT(g *callgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	_ = Write(&buf, g, opts)
	return buf.String()
}

// Write emits g as DOT to w. Any write error is returned.
func Write(w io.Writer, g *callgraph.Graph, opts Options) error {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", quoteID(name))
	if opts.Styled {
		bw.WriteString("  rankdir=LR;\n")
		bw.WriteString("  bgcolor=\"transparent\";\n")
		bw.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", margin=\"0.2,0.1\"];\n")
		bw.WriteString("  ranksep=0.6;\n")
		bw.WriteString("  nodesep=0.3;\n")
	} else {
		bw.WriteString("  node [shape=box];\n")
	}
	bw.WriteString("\n")

	for _, n := range g.Names() {
		q := quote(n)
		fmt.Fprintf(bw, "  %s [label=%s];\n", q, q)
	}

	bw.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}

	bw.WriteString("}\n")
	return bw.Flush()
}

// WriteFile writes g as DOT to path, replacing any existing file.
func WriteFile(path string, g *callgraph.Graph, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, g, opts)
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote returns s as a double-quoted DOT string.
func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// quoteID leaves plain identifiers bare and quotes everything else.
func quoteID(s string) string {
	for i, r := range s {
		alpha := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !alpha && (i == 0 || r < '0' || r > '9') {
			return quote(s)
		}
	}
	return s
}
