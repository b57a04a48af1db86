// Package pipeline runs the dump -> DOT conversion end to end.
//
// This package sequences the stages that the CLI exposes as a single command,
// so that tests and other front ends get the same behavior.
//
// # Stages
//
//  1. Expand: each input path becomes the glob "<path>*", so one logical
//     translation unit may contribute several suffixed dump files.
//  2. Parse: every matched file is read with [dump.ParseFile]. Unreadable
//     files are logged and contribute nothing.
//  3. Consolidate: records of all files are merged into one name-keyed
//     [callgraph.Graph].
//  4. Filter: the optional filter configuration is applied. A configuration
//     that cannot be loaded disables filtering with a warning.
//  5. Emit: the graph is written as DOT, plus any extra [Options.Formats].
//
// Only two failures stop a run: no symbols extracted from any input
// ([errors.ErrCodeNoSymbols]) and failure to write an output
// ([errors.ErrCodeWriteFailed]).
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Output:     "callgraph.dot",
//	    Inputs:     []string{"build/main.c", "build/util.c"},
//	    FilterPath: "filters.json",
//	    Formats:    []string{"svg"},
//	})
//
// [errors.ErrCodeNoSymbols]: github.com/matzehuels/cgraph2dot/pkg/errors
// [errors.ErrCodeWriteFailed]: github.com/matzehuels/cgraph2dot/pkg/errors
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
	"github.com/matzehuels/cgraph2dot/pkg/filter"
)

// DefaultScale is the PNG scale factor when [Options.Scale] is unset.
const DefaultScale = 2.0

// Format constants for the artifacts written next to the DOT output.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatHTML = "html"
)

// ValidFormats is the set of supported extra output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatHTML: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, html)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for one conversion run.
type Options struct {
	// Output is the DOT file to write.
	Output string
	// Inputs are dump paths or path prefixes, each expanded as "<path>*".
	Inputs []string
	// FilterPath is an optional filter configuration file (JSON or TOML).
	FilterPath string

	// Formats lists extra artifacts written next to Output.
	Formats []string
	// Title is used by the html artifact.
	Title string
	// Scale is the PNG scale factor.
	Scale float64

	Logger *log.Logger
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if strings.TrimSpace(o.Output) == "" {
		return fmt.Errorf("output path is required")
	}
	if len(o.Inputs) == 0 {
		return fmt.Errorf("at least one input path is required")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

func dedupe(in []string) []string {
	var out []string
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the filtered graph that was written.
	Graph *callgraph.Graph

	// Files are the dump files that matched the inputs, in parse order.
	Files []string

	// Filtered reports whether a filter configuration was applied.
	Filtered bool
	// Report summarizes the filter stage.
	Report filter.Report

	// Artifacts maps each written format ("dot" included) to its path.
	Artifacts map[string]string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FilesMatched int
	FilesParsed  int
	Symbols      int // records across all parsed files
	NodeCount    int // after filtering
	EdgeCount    int // after filtering

	ParseTime  time.Duration
	FilterTime time.Duration
	RenderTime time.Duration
}
