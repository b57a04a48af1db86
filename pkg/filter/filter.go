package filter

import (
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
)

// Options configures [Apply].
type Options struct {
	// Logger receives warnings about invalid patterns. Nil discards them.
	Logger *log.Logger
}

// Report summarizes what [Apply] did.
type Report struct {
	Renamed         int // nodes whose name changed during rewrite
	Merged          int // nodes folded into an existing name during rewrite
	Emptied         int // nodes dropped because rewrite left an empty name
	NotKept         int // nodes dropped by the keep stage
	Removed         int // nodes dropped by the removal stage
	DroppedEdges    int // edges lost to filtered-out endpoints
	InvalidPatterns int // patterns or rules skipped because they did not compile
}

// Dropped returns the number of nodes the filters removed from the graph.
func (r Report) Dropped() int { return r.Emptied + r.NotKept + r.Removed }

// Apply filters g according to cfg and returns a new graph. g is never
// modified. The returned graph always satisfies the closure invariant.
func Apply(g *callgraph.Graph, cfg Config, opts Options) (*callgraph.Graph, Report) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var rep Report
	edgesBefore := g.EdgeCount()
	out := g.Clone()

	if cfg.Rewrite.Present {
		rules := compileRules(cfg.Rewrite.Rules, logger, &rep)
		out = rewrite(out, rules, logger, &rep)
		edgesBefore = out.EdgeCount()
	}

	if cfg.Keep.Present {
		// An empty compiled list keeps nothing.
		keep := compilePatterns(KeyKeep, cfg.Keep.Patterns, logger, &rep)
		for _, name := range out.Names() {
			if !matchAny(keep, name) {
				out.Remove(name)
				rep.NotKept++
			}
		}
	}

	if cfg.Removal.Present {
		// An empty compiled list removes nothing.
		removal := compilePatterns(KeyRemoval, cfg.Removal.Patterns, logger, &rep)
		for _, name := range out.Names() {
			if matchAny(removal, name) {
				out.Remove(name)
				rep.Removed++
			}
		}
	}

	out.Prune()
	rep.DroppedEdges = edgesBefore - out.EdgeCount()
	return out, rep
}

type rule struct {
	re          *regexp.Regexp
	replacement string
}

func compilePatterns(key string, patterns []string, logger *log.Logger, rep *Report) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			logger.Warnf("%s: skipping invalid pattern %q: %v", key, p, err)
			rep.InvalidPatterns++
			continue
		}
		out = append(out, re)
	}
	return out
}

func compileRules(rules []Rule, logger *log.Logger, rep *Report) []rule {
	out := make([]rule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			logger.Warnf("%s: skipping rule with invalid pattern %q: %v", KeyRewrite, r.Pattern, err)
			rep.InvalidPatterns++
			continue
		}
		out = append(out, rule{re: re, replacement: TranslateReplacement(r.Replacement)})
	}
	return out
}

func matchAny(res []*regexp.Regexp, name string) bool {
	for _, re := range res {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func rename(rules []rule, name string) string {
	for _, r := range rules {
		name = r.re.ReplaceAllString(name, r.replacement)
	}
	return name
}

// rewrite builds a new graph whose node names and edge endpoints have been
// passed through rules. Endpoints may name nodes that do not exist; the
// closure pass resolves them.
func rewrite(g *callgraph.Graph, rules []rule, logger *log.Logger, rep *Report) *callgraph.Graph {
	out := callgraph.New()
	for _, n := range g.Nodes() {
		name := rename(rules, n.Name)
		if name == "" {
			logger.Warnf("%s: %q rewrites to an empty name; dropping", KeyRewrite, n.Name)
			rep.Emptied++
			continue
		}
		if name != n.Name {
			rep.Renamed++
		}
		if out.Has(name) {
			rep.Merged++
		}
		node := out.Upsert(name)
		for callee := range n.Calls {
			node.Calls.Add(rename(rules, callee))
		}
		for caller := range n.CalledBy {
			node.CalledBy.Add(rename(rules, caller))
		}
	}
	return out
}

// TranslateReplacement converts a replacement written with backslash group
// references into Go's expansion syntax: \1 and \g<name> become ${1} and
// ${name}, an escaped backslash becomes a literal one, and every $ is
// escaped as $$ so it stays literal in the rewritten name.
func TranslateReplacement(s string) string {
	if !strings.ContainsAny(s, `\$`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '$' {
			b.WriteString("$$")
			continue
		}
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch {
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			b.WriteString("${" + s[i+1:j] + "}")
			i = j - 1
		case next == 'g' && i+2 < len(s) && s[i+2] == '<':
			end := strings.IndexByte(s[i+3:], '>')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteString("${" + s[i+3:i+3+end] + "}")
			i = i + 3 + end
		case next == '\\':
			b.WriteByte('\\')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
