package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph2dot/pkg/observability"
)

// stageHooks logs pipeline stage timings at debug level.
type stageHooks struct {
	logger *log.Logger
}

// StageHooks returns pipeline hooks that report each stage on the CLI's
// logger. They only produce output with --verbose.
func (c *CLI) StageHooks() observability.PipelineHooks {
	return stageHooks{logger: c.Logger}
}

func (h stageHooks) OnParseStart(_ context.Context, files int) {
	h.logger.Debug("stage started", "stage", "parse", "files", files)
}

func (h stageHooks) OnParseComplete(_ context.Context, files, symbols int, d time.Duration, err error) {
	h.logger.Debug("stage finished", "stage", "parse", "files", files, "symbols", symbols,
		"duration", d.Round(time.Microsecond), "err", err)
}

func (h stageHooks) OnFilterStart(_ context.Context, nodes int) {
	h.logger.Debug("stage started", "stage", "filter", "nodes", nodes)
}

func (h stageHooks) OnFilterComplete(_ context.Context, renamed, dropped int, d time.Duration) {
	h.logger.Debug("stage finished", "stage", "filter", "renamed", renamed, "dropped", dropped,
		"duration", d.Round(time.Microsecond))
}

func (h stageHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("stage started", "stage", "render", "formats", formats)
}

func (h stageHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("stage finished", "stage", "render", "formats", formats,
		"duration", d.Round(time.Microsecond), "err", err)
}
