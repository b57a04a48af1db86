package pipeline

import (
	"context"
	"path/filepath"
	"slices"
	"testing"
	"time"

	cgerrors "github.com/matzehuels/cgraph2dot/pkg/errors"
	"github.com/matzehuels/cgraph2dot/pkg/observability"
)

type recordingHooks struct {
	observability.NoopPipelineHooks
	events   []string
	symbols  int
	parseErr error
	formats  []string
}

func (h *recordingHooks) OnParseStart(context.Context, int) {
	h.events = append(h.events, "parse")
}

func (h *recordingHooks) OnParseComplete(_ context.Context, _, symbols int, _ time.Duration, err error) {
	h.events = append(h.events, "parsed")
	h.symbols, h.parseErr = symbols, err
}

func (h *recordingHooks) OnFilterStart(context.Context, int) {
	h.events = append(h.events, "filter")
}

func (h *recordingHooks) OnFilterComplete(context.Context, int, int, time.Duration) {
	h.events = append(h.events, "filtered")
}

func (h *recordingHooks) OnRenderStart(_ context.Context, formats []string) {
	h.events = append(h.events, "render")
	h.formats = formats
}

func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.events = append(h.events, "rendered")
}

func withHooks(t *testing.T) *recordingHooks {
	t.Helper()
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)
	return h
}

func TestExecute_Hooks(t *testing.T) {
	h := withHooks(t)
	dir := setup(t)
	filters := filepath.Join(dir, "filters.json")
	writeFile(t, filters, `{"removal-filters": ["^printf$"]}`)
	logger, _ := testLogger()

	_, err := NewRunner(logger).Execute(context.Background(), Options{
		Output:     filepath.Join(dir, "out.dot"),
		Inputs:     []string{filepath.Join(dir, "main.c"), filepath.Join(dir, "solver.f90")},
		FilterPath: filters,
		Formats:    []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"parse", "parsed", "filter", "filtered", "render", "rendered"}
	if !slices.Equal(h.events, want) {
		t.Errorf("events = %v, want %v", h.events, want)
	}
	if h.symbols != 6 || h.parseErr != nil {
		t.Errorf("parse complete = %d, %v", h.symbols, h.parseErr)
	}
	if !slices.Equal(h.formats, []string{FormatJSON}) {
		t.Errorf("formats = %v", h.formats)
	}
}

func TestExecute_HooksOnlyDOT(t *testing.T) {
	h := withHooks(t)
	dir := setup(t)
	logger, _ := testLogger()

	_, err := NewRunner(logger).Execute(context.Background(), Options{
		Output: filepath.Join(dir, "out.dot"),
		Inputs: []string{filepath.Join(dir, "main.c")},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := []string{"parse", "parsed"}; !slices.Equal(h.events, want) {
		t.Errorf("events = %v, want %v", h.events, want)
	}
}

func TestExecute_HooksReportParseFailure(t *testing.T) {
	h := withHooks(t)
	dir := t.TempDir()
	logger, _ := testLogger()

	_, err := NewRunner(logger).Execute(context.Background(), Options{
		Output: filepath.Join(dir, "out.dot"),
		Inputs: []string{filepath.Join(dir, "missing.c")},
	})
	if !cgerrors.Is(err, cgerrors.ErrCodeNoSymbols) {
		t.Fatalf("err = %v, want NO_SYMBOLS", err)
	}
	if !cgerrors.Is(h.parseErr, cgerrors.ErrCodeNoSymbols) {
		t.Errorf("hook err = %v, want NO_SYMBOLS", h.parseErr)
	}
}
