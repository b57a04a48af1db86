package pipeline

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cgraph2dot/pkg/callgraph"
	"github.com/matzehuels/cgraph2dot/pkg/dump"
)

// ExpandInputs expands every input to the files matching "<input>*".
// Inputs with no matches are logged and skipped. The result is sorted and
// free of duplicates.
func ExpandInputs(inputs []string, logger *log.Logger) []string {
	seen := make(map[string]bool)
	var files []string
	for _, in := range inputs {
		pattern := escapeMeta(filepath.Clean(in)) + "*"
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			logger.Warn("invalid input pattern", "input", in, "err", err)
			continue
		}
		if len(matches) == 0 {
			logger.Warn("no files match input", "input", in)
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	slices.Sort(files)
	return files
}

var metaEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
)

// escapeMeta quotes glob metacharacters so a literal path prefix can be
// used in a pattern.
func escapeMeta(path string) string {
	return metaEscaper.Replace(path)
}

// ParseFiles parses every file and returns the results of the readable ones
// together with the total record count. Unreadable files are logged and
// skipped. Only context cancellation returns an error.
func ParseFiles(ctx context.Context, files []string, logger *log.Logger) ([]*dump.File, int, error) {
	var parsed []*dump.File
	symbols := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		f, err := dump.ParseFile(path)
		if err != nil {
			logger.Warn("skipping dump", "err", err)
			continue
		}
		if f.Len() == 0 {
			logger.Debug("no symbol table", "file", path)
		} else {
			logger.Debug("parsed dump", "file", path, "symbols", f.Len())
		}
		parsed = append(parsed, f)
		symbols += f.Len()
	}
	return parsed, symbols, nil
}

// Consolidate merges the parsed files, logging identifier collisions at
// debug level.
func Consolidate(files []*dump.File, logger *log.Logger) *callgraph.Graph {
	return callgraph.ConsolidateWith(files, callgraph.ConsolidateOptions{
		OnCollision: func(id dump.SymbolID, previous, current string) {
			logger.Debug("identifier collision", "id", id, "previous", previous, "current", current)
		},
	})
}
