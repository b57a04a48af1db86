package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
	cgerrors "github.com/matzehuels/cgraph2dot/pkg/errors"
	"github.com/matzehuels/cgraph2dot/pkg/render/dot"
)

const mainDump = `Initial Symbol table:
main/0 (main) @0x7f00
  Calls: compute/1 printf/2
compute/1 (compute) @0x7f01
  Called by: main/0
  Calls: __solver_MOD_step/3
printf/2 (printf) @0x7f02
  Called by: main/0
__solver_MOD_step/3 (__solver_MOD_step) @0x7f03
  Called by: compute/1
Removing unused symbols: dead/9
`

const utilDump = `Initial Symbol table:
__solver_MOD_step/0 (__solver_MOD_step)
  Calls: __solver_MOD_flux/1
__solver_MOD_flux/1 (__solver_MOD_flux)
  Called by: __solver_MOD_step/0
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.c.000i.cgraph"), mainDump)
	writeFile(t, filepath.Join(dir, "solver.f90.000i.cgraph"), utilDump)
	return dir
}

func testLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}), &buf
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"html", false},
		{"dot", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}

	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Output: "out.dot", Inputs: []string{"a.c"}, Formats: []string{"json", "json"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default")
	}
	if !slices.Equal(opts.Formats, []string{"json"}) {
		t.Errorf("Formats = %v, want deduplicated", opts.Formats)
	}

	for _, bad := range []Options{
		{Inputs: []string{"a.c"}},
		{Output: "out.dot"},
		{Output: "out.dot", Inputs: []string{"a.c"}, Formats: []string{"gif"}},
	} {
		if err := bad.ValidateAndSetDefaults(); err == nil {
			t.Errorf("ValidateAndSetDefaults(%+v) should fail", bad)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		output, format, want string
	}{
		{"out/callgraph.dot", "svg", "out/callgraph.svg"},
		{"callgraph.DOT", "json", "callgraph.json"},
		{"callgraph", "html", "callgraph.html"},
		{"graph.gv", "png", "graph.gv.png"},
	}
	for _, tt := range tests {
		if got := ArtifactPath(tt.output, tt.format); got != tt.want {
			t.Errorf("ArtifactPath(%q, %q) = %q, want %q", tt.output, tt.format, got, tt.want)
		}
	}
}

func TestExpandInputs(t *testing.T) {
	dir := setup(t)
	writeFile(t, filepath.Join(dir, "main.c.001t.cgraph"), "")
	writeFile(t, filepath.Join(dir, "a[1].c.000i.cgraph"), "")
	writeFile(t, filepath.Join(dir, "a1.c.000i.cgraph"), "")
	if err := os.Mkdir(filepath.Join(dir, "main.c.d"), 0o755); err != nil {
		t.Fatal(err)
	}

	logger, buf := testLogger()
	got := ExpandInputs([]string{
		filepath.Join(dir, "main.c"),
		filepath.Join(dir, "main.c.000i"), // overlaps the first input
		filepath.Join(dir, "a[1].c"),
		filepath.Join(dir, "missing.c"),
	}, logger)

	want := []string{
		filepath.Join(dir, "a[1].c.000i.cgraph"),
		filepath.Join(dir, "main.c.000i.cgraph"),
		filepath.Join(dir, "main.c.001t.cgraph"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("ExpandInputs = %v, want %v", got, want)
	}
	if !strings.Contains(buf.String(), "no files match input") {
		t.Errorf("missing warning for unmatched input:\n%s", buf.String())
	}
}

func TestExecute(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "callgraph.dot")
	logger, _ := testLogger()

	result, err := NewRunner(logger).Execute(context.Background(), Options{
		Output:  out,
		Inputs:  []string{filepath.Join(dir, "main.c"), filepath.Join(dir, "solver.f90"), filepath.Join(dir, "gone.c")},
		Formats: []string{FormatJSON, FormatHTML},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.FilesMatched != 2 || result.Stats.FilesParsed != 2 || result.Stats.Symbols != 6 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	want := []string{"__solver_MOD_flux", "__solver_MOD_step", "compute", "main", "printf"}
	if got := result.Graph.Names(); !slices.Equal(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
	if result.Filtered {
		t.Error("Filtered = true without a filter path")
	}

	written, err := dot.ParseFile(out)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if !written.Equal(result.Graph) {
		t.Error("DOT file does not match result graph")
	}
	if err := written.Validate(); err != nil {
		t.Errorf("written graph not closed: %v", err)
	}

	for _, format := range []string{FormatDOT, FormatJSON, FormatHTML} {
		path, ok := result.Artifacts[format]
		if !ok {
			t.Errorf("artifact %s missing", format)
			continue
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("artifact %s not written: %v", format, err)
		}
	}
	if got := result.Artifacts[FormatJSON]; got != filepath.Join(dir, "callgraph.json") {
		t.Errorf("json artifact path = %q", got)
	}
}

func TestExecute_Filters(t *testing.T) {
	dir := setup(t)
	filters := filepath.Join(dir, "filters.json")
	writeFile(t, filters, `{
	  "rewrite-filters": [{"pattern": "^__(\\w+)_MOD_(\\w+)$", "replacement": "\\1::\\2"}],
	  "removal-filters": ["^printf$"]
	}`)

	result, err := NewRunner(nil).Execute(context.Background(), Options{
		Output:     filepath.Join(dir, "out.dot"),
		Inputs:     []string{filepath.Join(dir, "main.c"), filepath.Join(dir, "solver.f90")},
		FilterPath: filters,
		Logger:     log.NewWithOptions(&bytes.Buffer{}, log.Options{}),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Filtered {
		t.Fatal("Filtered = false")
	}
	want := []callgraph.Edge{
		{From: "compute", To: "solver::step"},
		{From: "main", To: "compute"},
		{From: "solver::step", To: "solver::flux"},
	}
	if got := result.Graph.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges = %v, want %v", got, want)
	}
	if result.Report.Removed != 1 || result.Report.Renamed != 2 {
		t.Errorf("Report = %+v", result.Report)
	}
}

func TestExecute_UnusableFilterDisablesFiltering(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{not json`},
		{"trailing data", `{"removal-filters": ["main"]} junk`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setup(t)
			filters := filepath.Join(dir, "filters.json")
			writeFile(t, filters, tt.content)
			logger, buf := testLogger()

			result, err := NewRunner(logger).Execute(context.Background(), Options{
				Output:     filepath.Join(dir, "out.dot"),
				Inputs:     []string{filepath.Join(dir, "main.c")},
				FilterPath: filters,
			})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if result.Filtered || result.Graph.NodeCount() != 4 {
				t.Errorf("Filtered = %v, nodes = %d", result.Filtered, result.Graph.NodeCount())
			}
			logs := buf.String()
			if !strings.Contains(logs, "filtering disabled") || !strings.Contains(logs, string(cgerrors.ErrCodeInvalidConfig)) {
				t.Errorf("missing warning:\n%s", logs)
			}
		})
	}
}

func TestExecute_NoSymbols(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "empty.c.000i.cgraph"), "no table\n")
	out := filepath.Join(dir, "out.dot")

	_, err := NewRunner(nil).Execute(context.Background(), Options{
		Output: out,
		Inputs: []string{filepath.Join(dir, "empty.c"), filepath.Join(dir, "nothing.c")},
		Logger: log.NewWithOptions(&bytes.Buffer{}, log.Options{}),
	})
	if !cgerrors.Is(err, cgerrors.ErrCodeNoSymbols) {
		t.Fatalf("err = %v, want NO_SYMBOLS", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("output must not be written when no symbols were found")
	}
}

func TestExecute_WriteFailed(t *testing.T) {
	dir := setup(t)
	_, err := NewRunner(nil).Execute(context.Background(), Options{
		Output: filepath.Join(dir, "no-such-dir", "out.dot"),
		Inputs: []string{filepath.Join(dir, "main.c")},
		Logger: log.NewWithOptions(&bytes.Buffer{}, log.Options{}),
	})
	if !cgerrors.Is(err, cgerrors.ErrCodeWriteFailed) {
		t.Fatalf("err = %v, want WRITE_FAILED", err)
	}
}

func TestExecute_InvalidOptions(t *testing.T) {
	_, err := NewRunner(nil).Execute(context.Background(), Options{Output: "out.dot"})
	if !cgerrors.Is(err, cgerrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestExecute_Canceled(t *testing.T) {
	dir := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil).Execute(ctx, Options{
		Output: filepath.Join(dir, "out.dot"),
		Inputs: []string{filepath.Join(dir, "main.c")},
		Logger: log.NewWithOptions(&bytes.Buffer{}, log.Options{}),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
