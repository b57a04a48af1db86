package filter

import (
	"slices"
	"testing"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
)

// sample returns:
//
//	main -> a_MOD_x -> printf
//	main -> a_MOD_y -> helper
//	(printf -> printf) and malloc called by main
func sample(t *testing.T) *callgraph.Graph {
	t.Helper()
	g := callgraph.New()
	for _, n := range []string{"main", "a_MOD_x", "a_MOD_y", "printf", "helper", "malloc"} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range [][2]string{
		{"main", "a_MOD_x"}, {"main", "a_MOD_y"}, {"main", "malloc"},
		{"a_MOD_x", "printf"}, {"a_MOD_y", "helper"}, {"printf", "printf"},
	} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestApply_EmptyConfigIsIdentity(t *testing.T) {
	g := sample(t)
	out, rep := Apply(g, Config{}, Options{})
	if !out.Equal(g) {
		t.Errorf("Apply(empty) changed the graph: %v", out.Edges())
	}
	if rep != (Report{}) {
		t.Errorf("Report = %+v, want zero", rep)
	}
	if out == g {
		t.Error("Apply must return a new graph")
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	g := sample(t)
	before := g.Clone()
	cfg := Config{
		Rewrite: Rules(Rule{Pattern: "a_MOD_.*", Replacement: "a::common"}),
		Keep:    Patterns("a::", "main"),
		Removal: Patterns("^main$"),
	}
	Apply(g, cfg, Options{})
	if !g.Equal(before) {
		t.Error("input graph was modified")
	}
}

func TestApply_RewriteMerge(t *testing.T) {
	g := sample(t)
	cfg := Config{Rewrite: Rules(Rule{Pattern: "a_MOD_.*", Replacement: "a::common"})}

	out, rep := Apply(g, cfg, Options{})

	if out.Has("a_MOD_x") || out.Has("a_MOD_y") {
		t.Fatalf("original names survived: %v", out.Names())
	}
	common, ok := out.Node("a::common")
	if !ok {
		t.Fatalf("a::common missing: %v", out.Names())
	}
	if got := common.Calls.Sorted(); !slices.Equal(got, []string{"helper", "printf"}) {
		t.Errorf("a::common.Calls = %v, want union [helper printf]", got)
	}
	if got := common.CalledBy.Sorted(); !slices.Equal(got, []string{"main"}) {
		t.Errorf("a::common.CalledBy = %v, want [main]", got)
	}
	main, _ := out.Node("main")
	if got := main.Calls.Sorted(); !slices.Equal(got, []string{"a::common", "malloc"}) {
		t.Errorf("main.Calls = %v", got)
	}
	if rep.Renamed != 2 || rep.Merged != 1 {
		t.Errorf("Report = %+v, want Renamed=2 Merged=1", rep)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestApply_RewriteChains(t *testing.T) {
	g := callgraph.New()
	_ = g.AddNode("__physics_MOD_step")

	cfg := Config{Rewrite: Rules(
		Rule{Pattern: `^__(\w+)_MOD_(\w+)$`, Replacement: `\1::\2`},
		Rule{Pattern: `::`, Replacement: "."},
	)}
	out, _ := Apply(g, cfg, Options{})

	if got := out.Names(); !slices.Equal(got, []string{"physics.step"}) {
		t.Errorf("Names = %v, want [physics.step]", got)
	}
}

func TestApply_RewriteEndpointWithoutNode(t *testing.T) {
	g := callgraph.New()
	_ = g.AddNode("caller")
	_ = g.AddNode("callee_v1")
	_ = g.AddEdge("caller", "callee_v1")

	cfg := Config{Rewrite: Rules(Rule{Pattern: "_v1$", Replacement: ""})}
	out, _ := Apply(g, cfg, Options{})

	if got := out.Edges(); !slices.Equal(got, []callgraph.Edge{{From: "caller", To: "callee"}}) {
		t.Errorf("Edges = %v", got)
	}
}

func TestApply_KeepFailsClosed(t *testing.T) {
	out, rep := Apply(sample(t), Config{Keep: Patterns("(")}, Options{})
	if out.NodeCount() != 0 {
		t.Errorf("NodeCount = %d, want 0", out.NodeCount())
	}
	if rep.InvalidPatterns != 1 || rep.NotKept != 6 {
		t.Errorf("Report = %+v", rep)
	}
}

func TestApply_EmptyKeepKeepsNothing(t *testing.T) {
	out, _ := Apply(sample(t), Config{Keep: Patterns()}, Options{})
	if out.NodeCount() != 0 {
		t.Errorf("NodeCount = %d, want 0", out.NodeCount())
	}
}

func TestApply_RemovalFailsOpen(t *testing.T) {
	g := sample(t)
	out, rep := Apply(g, Config{Removal: Patterns("(")}, Options{})
	if !out.Equal(g) {
		t.Errorf("graph changed: %v", out.Names())
	}
	if rep.Removed != 0 || rep.InvalidPatterns != 1 {
		t.Errorf("Report = %+v", rep)
	}
}

func TestApply_StageOrder(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "keep substring match",
			cfg:  Config{Keep: Patterns("MOD")},
			want: []string{"a_MOD_x", "a_MOD_y"},
		},
		{
			name: "keep sees rewritten names",
			cfg: Config{
				Rewrite: Rules(Rule{Pattern: "a_MOD_", Replacement: "mod."}),
				Keep:    Patterns(`^mod\.`),
			},
			want: []string{"mod.x", "mod.y"},
		},
		{
			name: "removal after keep",
			cfg: Config{
				Keep:    Patterns("MOD", "main"),
				Removal: Patterns("_y$"),
			},
			want: []string{"a_MOD_x", "main"},
		},
		{
			name: "invalid keep pattern skipped",
			cfg:  Config{Keep: Patterns("(", "^main$")},
			want: []string{"main"},
		},
		{
			name: "removal any match",
			cfg:  Config{Removal: Patterns("^printf$", "alloc")},
			want: []string{"a_MOD_x", "a_MOD_y", "helper", "main"},
		},
		{
			name: "invalid rewrite rule skipped",
			cfg: Config{Rewrite: Rules(
				Rule{Pattern: "(", Replacement: "x"},
				Rule{Pattern: "^helper$", Replacement: "aid"},
			)},
			want: []string{"a_MOD_x", "a_MOD_y", "aid", "main", "malloc", "printf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := Apply(sample(t), tt.cfg, Options{})
			if got := out.Names(); !slices.Equal(got, tt.want) {
				t.Errorf("Names = %v, want %v", got, tt.want)
			}
			if err := out.Validate(); err != nil {
				t.Errorf("closure violated: %v", err)
			}
		})
	}
}

func TestApply_ClosureDropsEdges(t *testing.T) {
	out, rep := Apply(sample(t), Config{Removal: Patterns("^a_MOD_")}, Options{})

	want := []callgraph.Edge{{From: "main", To: "malloc"}, {From: "printf", To: "printf"}}
	if got := out.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges = %v, want %v", got, want)
	}
	if rep.Removed != 2 || rep.DroppedEdges != 4 {
		t.Errorf("Report = %+v, want Removed=2 DroppedEdges=4", rep)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestApply_EmptyRewriteResultDropped(t *testing.T) {
	out, rep := Apply(sample(t), Config{Rewrite: Rules(Rule{Pattern: "^malloc$", Replacement: ""})}, Options{})
	if out.Has("") || out.Has("malloc") {
		t.Errorf("Names = %v", out.Names())
	}
	if rep.Emptied != 1 {
		t.Errorf("Emptied = %d, want 1", rep.Emptied)
	}
	if err := out.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestApply_DollarIsLiteral(t *testing.T) {
	tests := []struct {
		pattern, replacement, want string
	}{
		{"_impl$", "$impl", "foo$impl"},
		{"^(foo)_impl$", `\1$1x`, "foo$1x"},
		{"_impl$", `\\$`, `foo\$`},
	}
	for _, tt := range tests {
		t.Run(tt.replacement, func(t *testing.T) {
			g := callgraph.New()
			if err := g.AddNode("foo_impl"); err != nil {
				t.Fatal(err)
			}
			out, _ := Apply(g, Config{Rewrite: Rules(Rule{Pattern: tt.pattern, Replacement: tt.replacement})}, Options{})
			if got := out.Names(); !slices.Equal(got, []string{tt.want}) {
				t.Errorf("Names = %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestTranslateReplacement(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`\1::\2`, "${1}::${2}"},
		{`\12x`, "${12}x"},
		{`\g<mod>.\g<1>`, "${mod}.${1}"},
		{`a\\b`, `a\b`},
		{`\g<open`, `\g<open`},
		{"a$b", "a$$b"},
		{"$1x", "$$1x"},
		{`\1$`, "${1}$$"},
		{`trailing\`, `trailing\`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := TranslateReplacement(tt.in); got != tt.want {
				t.Errorf("TranslateReplacement(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
