package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cgraph2dot/pkg/errors"
	"github.com/matzehuels/cgraph2dot/pkg/render/html"
)

// htmlCommand converts a DOT call graph into an interactive HTML page.
func (c *CLI) htmlCommand() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "html <input.dot|input.json> <output.html>",
		Short: "Convert a call graph to an interactive HTML viewer",
		Long: `Write a self-contained HTML page that displays the call graph with
vis-network. The page supports search, filtering by symbol kind, and
collapsing a function's callees with a double click.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(args[0])
			if err != nil {
				return err
			}
			prog := newProgress(c.Logger)
			if err := html.WriteFile(args[1], g, html.Options{Title: title}); err != nil {
				return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", args[1])
			}
			prog.done("Generated " + args[1])

			out := cmd.OutOrStdout()
			printSuccess(out, "Wrote viewer for %d nodes and %d edges", g.NodeCount(), g.EdgeCount())
			printFile(out, args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", html.DefaultTitle, "page title")
	return cmd
}
