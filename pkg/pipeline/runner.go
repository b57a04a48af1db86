package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
	cgerrors "github.com/matzehuels/cgraph2dot/pkg/errors"
	"github.com/matzehuels/cgraph2dot/pkg/filter"
	"github.com/matzehuels/cgraph2dot/pkg/observability"
	"github.com/matzehuels/cgraph2dot/pkg/render/dot"
)

// Runner executes conversion runs. It holds no per-run state, so one Runner
// can serve any number of sequential runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs expand -> parse -> consolidate -> filter -> emit.
//
// The returned error carries [cgerrors.ErrCodeInvalidInput] for bad
// options, [cgerrors.ErrCodeNoSymbols] when nothing was parsed, and
// [cgerrors.ErrCodeWriteFailed] when an output could not be produced.
// Context cancellation is returned unwrapped.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeInvalidInput, err, "invalid options")
	}
	logger := opts.Logger
	hooks := observability.Pipeline()

	result := &Result{Artifacts: make(map[string]string)}

	// Stage 1: expand and parse
	parseStart := time.Now()
	result.Files = ExpandInputs(opts.Inputs, logger)
	result.Stats.FilesMatched = len(result.Files)
	hooks.OnParseStart(ctx, len(result.Files))

	files, symbols, err := ParseFiles(ctx, result.Files, logger)
	if err == nil && symbols == 0 {
		err = cgerrors.New(cgerrors.ErrCodeNoSymbols,
			"no symbols extracted from %d file(s) matching %d input(s)", len(result.Files), len(opts.Inputs))
	}
	if err != nil {
		hooks.OnParseComplete(ctx, len(files), symbols, time.Since(parseStart), err)
		return nil, err
	}
	result.Stats.FilesParsed = len(files)
	result.Stats.Symbols = symbols

	g := Consolidate(files, logger)
	result.Stats.ParseTime = time.Since(parseStart)
	hooks.OnParseComplete(ctx, len(files), symbols, result.Stats.ParseTime, nil)

	logger.Info("parsed dumps",
		"files", len(files),
		"symbols", symbols,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: filter
	if opts.FilterPath != "" {
		filterStart := time.Now()
		hooks.OnFilterStart(ctx, g.NodeCount())
		g, result.Report, result.Filtered = r.applyFilters(g, opts)
		result.Stats.FilterTime = time.Since(filterStart)
		hooks.OnFilterComplete(ctx, result.Report.Renamed,
			result.Report.Dropped(), result.Stats.FilterTime)
		if result.Filtered {
			logger.Info("applied filters",
				"renamed", result.Report.Renamed,
				"merged", result.Report.Merged,
				"dropped", result.Report.Dropped(),
				"nodes", g.NodeCount(),
				"duration", result.Stats.FilterTime)
		}
	}
	result.Graph = g
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: emit
	renderStart := time.Now()
	if err := dot.WriteFile(opts.Output, g, dot.Options{}); err != nil {
		return nil, cgerrors.Wrap(cgerrors.ErrCodeWriteFailed, err, "write %s", opts.Output)
	}
	result.Artifacts[FormatDOT] = opts.Output

	if len(opts.Formats) > 0 {
		hooks.OnRenderStart(ctx, opts.Formats)
		err := r.emitArtifacts(ctx, g, opts, result)
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		if err != nil {
			return nil, err
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("wrote outputs",
		"dot", opts.Output,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// emitArtifacts renders the extra formats and records where they were
// written.
func (r *Runner) emitArtifacts(ctx context.Context, g *callgraph.Graph, opts Options, result *Result) error {
	artifacts, err := Render(ctx, g, opts)
	if err != nil {
		return cgerrors.Wrap(cgerrors.ErrCodeWriteFailed, err, "render artifacts")
	}
	paths, err := writeArtifacts(opts.Output, artifacts, opts.Formats)
	for format, path := range paths {
		result.Artifacts[format] = path
	}
	if err != nil {
		return cgerrors.Wrap(cgerrors.ErrCodeWriteFailed, err, "write artifacts")
	}
	return nil
}

// applyFilters loads the filter configuration and applies it. A
// configuration that cannot be loaded leaves g unfiltered.
func (r *Runner) applyFilters(g *callgraph.Graph, opts Options) (*callgraph.Graph, filter.Report, bool) {
	cfg, err := filter.LoadFile(opts.FilterPath, opts.Logger)
	if err != nil {
		opts.Logger.Warn("filter configuration unusable; filtering disabled",
			"code", cgerrors.GetCode(err), "err", cgerrors.UserMessage(err))
		return g, filter.Report{}, false
	}
	out, rep := filter.Apply(g, cfg, filter.Options{Logger: opts.Logger})
	return out, rep, true
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
