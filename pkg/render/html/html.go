package html

import (
	_ "embed"
	"html/template"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/cgraph2dot/pkg/buildinfo"
	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
)

// DefaultTitle is used when [Options.Title] is empty.
const DefaultTitle = "Call Graph"

// Group classifies a symbol for coloring and filtering.
type Group int

const (
	GroupOther Group = iota
	GroupModule
	GroupRuntime
	GroupEntry
	GroupUser
)

var groupLabels = map[Group]string{
	GroupOther:   "Other",
	GroupModule:  "Module Functions",
	GroupRuntime: "System/Runtime",
	GroupEntry:   "Entry/Math",
	GroupUser:    "User Functions",
}

func (g Group) String() string { return groupLabels[g] }

var (
	runtimeNames = []string{"malloc", "free", "memset", "memmove", "realloc"}
	entryNames   = []string{"main", "MAIN__", "sqrt", "lround", "copysign"}
)

// Classify returns the group for a symbol name.
func Classify(name string) Group {
	switch {
	case strings.HasPrefix(name, "__mod_"):
		return GroupModule
	case strings.HasPrefix(name, "_gfortran_"), slices.Contains(runtimeNames, name):
		return GroupRuntime
	case slices.Contains(entryNames, name):
		return GroupEntry
	default:
		return GroupUser
	}
}

// Options configures page generation.
type Options struct {
	// Title is shown in the browser tab. Defaults to [DefaultTitle].
	Title string
}

type visNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group Group  `json:"group"`
	Title string `json:"title"`
}

type visEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Arrows string `json:"arrows"`
}

type legendItem struct {
	Color string
	Label string
}

type page struct {
	Title     string
	Generator string
	Nodes     []visNode
	Edges     []visEdge
	Legend    []legendItem
}

var groupColors = []legendItem{
	{"#97C2FC", GroupOther.String()},
	{"#FFFF99", GroupModule.String()},
	{"#CCCCCC", GroupRuntime.String()},
	{"#FB7E81", GroupEntry.String()},
	{"#7BE141", GroupUser.String()},
}

//go:embed viewer.html.tmpl
var viewerSource string

var viewer = template.Must(template.New("viewer").Parse(viewerSource))

// Render writes the interactive page for g to w.
func Render(w io.Writer, g *callgraph.Graph, opts Options) error {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	p := page{
		Title:     title,
		Generator: buildinfo.Generator(),
		Nodes:     make([]visNode, 0, g.NodeCount()),
		Edges:     make([]visEdge, 0, g.EdgeCount()),
		Legend:    groupColors,
	}
	for _, name := range g.Names() {
		p.Nodes = append(p.Nodes, visNode{
			ID:    name,
			Label: name,
			Group: Classify(name),
			Title: name + "\nDouble-click to collapse/expand children",
		})
	}
	for _, e := range g.Edges() {
		p.Edges = append(p.Edges, visEdge{From: e.From, To: e.To, Arrows: "to"})
	}
	return viewer.Execute(w, p)
}

// WriteFile writes the interactive page for g to path.
func WriteFile(path string, g *callgraph.Graph, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Render(f, g, opts)
}
