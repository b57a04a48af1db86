package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
	"github.com/matzehuels/cgraph2dot/pkg/errors"
	graphio "github.com/matzehuels/cgraph2dot/pkg/io"
	"github.com/matzehuels/cgraph2dot/pkg/render/dot"
)

// diffCommand compares two DOT call graphs structurally.
func (c *CLI) diffCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "diff <reference.dot> <generated.dot>",
		Short: "Compare two call graphs structurally",
		Long: `Compare the node and edge sets of two call graphs, ignoring statement
order and formatting. Either side may be a DOT file or a JSON graph written
with --format json. Exits with status 1 when the graphs differ.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := c.loadGraph(args[0])
			if err != nil {
				return err
			}
			gen, err := c.loadGraph(args[1])
			if err != nil {
				return err
			}

			d := callgraph.Diff(ref, gen)
			out := cmd.OutOrStdout()
			if plain {
				fmt.Fprintln(out, d.String())
			} else {
				printDiff(out, args[0], args[1], d)
			}
			if !d.Equal() {
				return errors.New(errors.ErrCodeGraphsDiffer, "%s and %s differ", args[0], args[1])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print an unstyled plain-text report")
	return cmd
}

// loadGraph reads a call graph from a DOT file, or from a JSON graph when
// path ends in .json.
func (c *CLI) loadGraph(path string) (*callgraph.Graph, error) {
	prog := newProgress(c.Logger)
	read := dot.ParseFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		read = graphio.ImportJSON
	}
	g, err := read(path)
	if err != nil {
		code := errors.ErrCodeInvalidInput
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrCodeFileNotFound
		}
		return nil, errors.Wrap(code, err, "read %s", path)
	}
	prog.done("Parsed " + path)
	c.Logger.Debug("graph", "file", path, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}
