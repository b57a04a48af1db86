package dot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
)

const quoted = `"((?:[^"\\]|\\.)*)"`

var (
	edgeRe = regexp.MustCompile(`^\s*` + quoted + `\s*->\s*` + quoted)
	nodeRe = regexp.MustCompile(`^\s*` + quoted + `\s*(?:\[|;|$)`)
)

var unescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

// ParseFile reads the DOT file at path with [Parse].
func ParseFile(path string) (*callgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse reads quoted node and edge statements from r. Other lines are
// ignored.
func Parse(r io.Reader) (*callgraph.Graph, error) {
	g := callgraph.New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if m := edgeRe.FindStringSubmatch(line); m != nil {
			from, to := unescaper.Replace(m[1]), unescaper.Replace(m[2])
			g.Upsert(from)
			g.Upsert(to)
			_ = g.AddEdge(from, to)
			continue
		}
		if m := nodeRe.FindStringSubmatch(line); m != nil {
			g.Upsert(unescaper.Replace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return g, nil
}
