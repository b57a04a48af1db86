// Package cli implements the cgraph2dot command-line interface.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cgraph2dot/pkg/buildinfo"
	"github.com/matzehuels/cgraph2dot/pkg/errors"
	"github.com/matzehuels/cgraph2dot/pkg/pipeline"
)

// appName is the application name used for display.
const appName = "cgraph2dot"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// convertOpts holds the command-line flags for the conversion itself.
type convertOpts struct {
	filters string // filter configuration file
	formats string // comma-separated extra artifacts
	title   string // html artifact title
	scale   float64
	quiet   bool // suppress the summary
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself performs the conversion.
func (c *CLI) RootCommand() *cobra.Command {
	var opts convertOpts
	var verbose bool

	root := &cobra.Command{
		Use:   appName + " [flags] <output.dot> <input>...",
		Short: "Convert GCC call-graph dumps to Graphviz DOT",
		Long: `cgraph2dot reads the call-graph dumps GCC writes with -fdump-ipa-cgraph,
merges them into one graph keyed by symbol name, optionally filters and
renames symbols, and writes the result as a Graphviz DOT file.

Each input is a path prefix: "build/main.c" picks up every dump named
"build/main.c*", such as "build/main.c.000i.cgraph".`,
		Example: `  cgraph2dot callgraph.dot build/main.c build/util.c
  cgraph2dot -f filters.json --format svg,html callgraph.dot build/*.f90`,
		Version:      buildinfo.Version,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], args[1:], opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.Flags().StringVarP(&opts.filters, "filters", "f", "", "filter configuration file (JSON or TOML)")
	root.Flags().StringVar(&opts.formats, "format", "", "extra outputs next to the DOT file: svg,png,pdf,json,html")
	root.Flags().StringVar(&opts.title, "title", "", "title of the html output")
	root.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	root.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary")

	root.AddCommand(c.diffCommand())
	root.AddCommand(c.htmlCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

func (c *CLI) runConvert(cmd *cobra.Command, output string, inputs []string, opts convertOpts) error {
	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c.Logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Output:     output,
		Inputs:     inputs,
		FilterPath: opts.filters,
		Formats:    formats,
		Title:      opts.title,
		Scale:      opts.scale,
	})
	if err != nil {
		return err
	}

	if !opts.quiet {
		printSummary(cmd.OutOrStdout(), result)
	}
	return nil
}

// parseFormats parses a comma-separated format list. Blank entries are
// ignored and names are case-insensitive.
func parseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if err := pipeline.ValidateFormat(f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "--format")
		}
		formats = append(formats, f)
	}
	return formats, nil
}
