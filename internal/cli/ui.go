package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
	"github.com/matzehuels/cgraph2dot/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleAdded   = lipgloss.NewStyle().Foreground(colorGreen)
	styleRemoved = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints graph statistics on a single line.
func printStats(w io.Writer, parts ...string) {
	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	fmt.Fprintln(w, b.String())
}

// printSummary prints the end-of-run report of a conversion.
func printSummary(w io.Writer, r *pipeline.Result) {
	printSuccess(w, "Wrote call graph with %s nodes and %s edges",
		StyleNumber.Render(fmt.Sprint(r.Stats.NodeCount)),
		StyleNumber.Render(fmt.Sprint(r.Stats.EdgeCount)))

	printStats(w,
		fmt.Sprintf("%d files", r.Stats.FilesParsed),
		fmt.Sprintf("%d symbols", r.Stats.Symbols),
		fmt.Sprintf("parsed in %s", r.Stats.ParseTime.Round(time.Millisecond)))

	if r.Filtered {
		rep := r.Report
		printStats(w,
			fmt.Sprintf("%d renamed", rep.Renamed),
			fmt.Sprintf("%d merged", rep.Merged),
			fmt.Sprintf("%d dropped", rep.Dropped()),
			fmt.Sprintf("%d edges dropped", rep.DroppedEdges))
		if rep.InvalidPatterns > 0 {
			printWarning(w, "%d filter pattern(s) skipped as invalid", rep.InvalidPatterns)
		}
	}

	formats := make([]string, 0, len(r.Artifacts))
	for f := range r.Artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	for _, f := range formats {
		printFile(w, r.Artifacts[f])
	}
}

// printDiff prints a structural comparison.
func printDiff(w io.Writer, refPath, genPath string, d callgraph.Difference) {
	if d.Equal() {
		printSuccess(w, "Graphs are structurally identical")
		printStats(w, fmt.Sprintf("%d nodes", d.RefNodes), fmt.Sprintf("%d edges", d.RefEdges))
		return
	}

	printError(w, "Graphs differ")
	printKeyValue(w, "Reference", fmt.Sprintf("%s: %d nodes, %d edges", refPath, d.RefNodes, d.RefEdges))
	printKeyValue(w, "Generated", fmt.Sprintf("%s: %d nodes, %d edges", genPath, d.GenNodes, d.GenEdges))

	section := func(title string, lines []string, style lipgloss.Style, sign string) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleTitle.Render(title))
		for _, l := range lines {
			fmt.Fprintln(w, "  "+style.Render(sign+" "+l))
		}
	}
	section("Nodes only in reference:", d.NodesOnlyInRef, styleRemoved, "-")
	section("Nodes only in generated:", d.NodesOnlyInGen, styleAdded, "+")
	section("Edges only in reference:", edgeLines(d.EdgesOnlyInRef), styleRemoved, "-")
	section("Edges only in generated:", edgeLines(d.EdgesOnlyInGen), styleAdded, "+")
}

func edgeLines(edges []callgraph.Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.From + " -> " + e.To
	}
	return out
}
