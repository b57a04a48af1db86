// Package observability provides hooks for instrumenting conversion runs.
//
// The package keeps metrics and tracing backends out of the library. A
// program registers its hooks once at startup and the pipeline reports each
// stage to them.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// The pipeline calls the hooks around each stage:
//
//	observability.Pipeline().OnParseStart(ctx, len(files))
//	// ... parse ...
//	observability.Pipeline().OnParseComplete(ctx, parsed, symbols, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from a conversion run.
type PipelineHooks interface {
	// Parse events. files is the number of dump files matched by the inputs.
	OnParseStart(ctx context.Context, files int)
	OnParseComplete(ctx context.Context, files, symbols int, duration time.Duration, err error)

	// Filter events. dropped counts nodes removed by the keep and removal
	// stages.
	OnFilterStart(ctx context.Context, nodes int)
	OnFilterComplete(ctx context.Context, renamed, dropped int, duration time.Duration)

	// Render events. formats never includes the DOT output.
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnParseComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnFilterStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnFilterComplete(context.Context, int, int, time.Duration)        {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. A nil value is ignored.
// This should be called once at application startup before any run.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
