package filter

// PatternList is an optional list of regular expressions. Present reports
// whether the list was configured at all, so that an absent list and an
// empty one stay distinct.
type PatternList struct {
	Patterns []string
	Present  bool
}

// Patterns returns a present list holding patterns.
func Patterns(patterns ...string) PatternList {
	return PatternList{Patterns: patterns, Present: true}
}

// Rule is one regex substitution applied to symbol names.
type Rule struct {
	Pattern     string `json:"pattern" toml:"pattern"`
	Replacement string `json:"replacement" toml:"replacement"`
}

// RuleList is an optional ordered list of rewrite rules.
type RuleList struct {
	Rules   []Rule
	Present bool
}

// Rules returns a present list holding rules.
func Rules(rules ...Rule) RuleList {
	return RuleList{Rules: rules, Present: true}
}

// Config holds the three filter lists. The zero value filters nothing.
type Config struct {
	Removal PatternList
	Keep    PatternList
	Rewrite RuleList
}

// Empty reports whether no list is configured.
func (c Config) Empty() bool {
	return !c.Removal.Present && !c.Keep.Present && !c.Rewrite.Present
}

// Configuration file keys.
const (
	KeyRemoval = "removal-filters"
	KeyKeep    = "keep-filters"
	KeyRewrite = "rewrite-filters"
)
