package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Region markers delimiting the symbol table that is read. GCC prints the
// removed symbols on the same line as the end marker.
const (
	TableStart = "Initial Symbol table:"
	TableEnd   = "Removing unused symbols:"
)

const (
	calledByLabel = "Called by:"
	callsLabel    = "Calls:"

	maxLineSize = 1 << 20
)

// ErrInvalidEncoding is returned when a dump line is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

type state int

const (
	outsideTable state = iota
	inTable
	readingCalledBy
	readingCalls
)

// headerPattern matches "name/ordinal (annotation)" at column 0. GCC 8 appends
// "@0x..." after the annotation, so the end is not anchored.
var headerPattern = regexp.MustCompile(`^(\S+)/(\d+)\s+\((.*)\)`)

// ParseFile opens the dump at path and parses it with [Parse].
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	file, err := parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

// Parse reads one dump from r. It returns an error on read failures and on
// lines that are not valid UTF-8; a dump without a symbol table is not an
// error and yields an empty File.
func Parse(r io.Reader) (*File, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*File, error) {
	p := parser{file: newFile(path)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrInvalidEncoding)
		}
		if done := p.line(line); done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	p.flush()
	return p.file, nil
}

type parser struct {
	file    *File
	state   state
	current *Record
}

// line feeds one line into the state machine and reports whether parsing
// should stop.
func (p *parser) line(line string) bool {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, TableEnd) {
		return true
	}
	if p.state == outsideTable {
		if trimmed == TableStart {
			p.state = inTable
		}
		return false
	}
	if trimmed == "" {
		return false
	}

	if !isIndented(line) {
		p.flush()
		if m := headerPattern.FindStringSubmatch(line); m != nil {
			if id, ok := ParseSymbolID(m[1] + "/" + m[2]); ok {
				p.current = &Record{ID: id, Name: id.Name}
			}
		}
		p.state = inTable
		return false
	}

	if p.current == nil {
		return false
	}
	switch {
	case strings.HasPrefix(trimmed, calledByLabel):
		p.state = readingCalledBy
		p.current.CalledBy = appendIDs(p.current.CalledBy, trimmed[len(calledByLabel):])
	case strings.HasPrefix(trimmed, callsLabel):
		p.state = readingCalls
		p.current.Calls = appendIDs(p.current.Calls, trimmed[len(callsLabel):])
	case p.state == readingCalledBy:
		p.current.CalledBy = appendIDs(p.current.CalledBy, trimmed)
	case p.state == readingCalls:
		p.current.Calls = appendIDs(p.current.Calls, trimmed)
	}
	return false
}

// flush stores the current record, if any, and clears it.
func (p *parser) flush() {
	if p.current != nil {
		p.file.add(p.current)
		p.current = nil
	}
}

func isIndented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

// appendIDs appends every whitespace-separated token of s that parses as a
// symbol identifier.
func appendIDs(ids []SymbolID, s string) []SymbolID {
	for _, tok := range strings.Fields(s) {
		if id, ok := ParseSymbolID(tok); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
