package filter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph2dot/pkg/errors"
)

// Format is a configuration file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFor picks the encoding from a file extension. Anything that is not
// .toml is read as JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// LoadFile reads the filter configuration at path. An error means the file
// could not be read or decoded at all; callers treat that as "no filtering".
// It carries [errors.ErrCodeFileNotFound] when the file cannot be opened and
// [errors.ErrCodeInvalidConfig] when it cannot be decoded. Unknown keys and
// malformed entries are dropped with a warning on logger, which may be nil.
func LoadFile(path string, logger *log.Logger) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open filter file")
	}
	defer f.Close()

	cfg, err := Load(f, FormatFor(path), logger)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Load decodes a filter configuration from r.
func Load(r io.Reader, format Format, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	raw := map[string]any{}
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	default:
		var top any
		dec := json.NewDecoder(r)
		if err := dec.Decode(&top); err != nil {
			return Config{}, fmt.Errorf("decode json: %w", err)
		}
		if err := dec.Decode(new(any)); err != io.EOF {
			return Config{}, fmt.Errorf("decode json: unexpected data after top-level value")
		}
		obj, ok := top.(map[string]any)
		if !ok {
			return Config{}, fmt.Errorf("decode json: top level is %s, want object", typeName(top))
		}
		raw = obj
	}

	return fromMap(raw, logger), nil
}

func fromMap(raw map[string]any, logger *log.Logger) Config {
	var cfg Config

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		switch key {
		case KeyRemoval:
			if list, ok := patternList(key, value, logger); ok {
				cfg.Removal = list
			}
		case KeyKeep:
			if list, ok := patternList(key, value, logger); ok {
				cfg.Keep = list
			}
		case KeyRewrite:
			if list, ok := ruleList(key, value, logger); ok {
				cfg.Rewrite = list
			}
		default:
			logger.Warnf("filter config: ignoring unknown key %q", key)
		}
	}
	return cfg
}

func patternList(key string, value any, logger *log.Logger) (PatternList, bool) {
	items, ok := value.([]any)
	if !ok {
		logger.Warnf("filter config: %s must be a list of strings, got %s; ignoring", key, typeName(value))
		return PatternList{}, false
	}
	list := PatternList{Patterns: []string{}, Present: true}
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			logger.Warnf("filter config: %s[%d] is %s, not a string; dropping", key, i, typeName(item))
			continue
		}
		list.Patterns = append(list.Patterns, s)
	}
	return list, true
}

func ruleList(key string, value any, logger *log.Logger) (RuleList, bool) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []map[string]any:
		// TOML arrays of tables
		for _, m := range v {
			items = append(items, m)
		}
	default:
		logger.Warnf("filter config: %s must be a list of rules, got %s; ignoring", key, typeName(value))
		return RuleList{}, false
	}

	list := RuleList{Rules: []Rule{}, Present: true}
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			logger.Warnf("filter config: %s[%d] is %s, not an object; dropping", key, i, typeName(item))
			continue
		}
		pattern, okP := m["pattern"].(string)
		replacement, okR := m["replacement"].(string)
		if !okP || !okR {
			logger.Warnf("filter config: %s[%d] needs string pattern and replacement; dropping", key, i)
			continue
		}
		list.Rules = append(list.Rules, Rule{Pattern: pattern, Replacement: replacement})
	}
	return list, true
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a bool"
	case float64, int64:
		return "a number"
	case []any, []map[string]any:
		return "a list"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
