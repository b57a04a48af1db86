package dump

import (
	"strconv"
	"strings"
)

// SymbolID identifies one compiled instance of a symbol within a single dump
// file, printed by GCC as "name/ordinal".
type SymbolID struct {
	Name    string
	Ordinal int
}

// String returns the "name/ordinal" form used in dump files.
func (id SymbolID) String() string {
	return id.Name + "/" + strconv.Itoa(id.Ordinal)
}

// ParseSymbolID parses a "name/ordinal" token. The split happens at the last
// slash so names that contain slashes (C++ operator/) still parse. Tokens
// that start with "(" are GCC annotations, not identifiers.
func ParseSymbolID(tok string) (SymbolID, bool) {
	i := strings.LastIndexByte(tok, '/')
	if i <= 0 || i == len(tok)-1 || tok[0] == '(' {
		return SymbolID{}, false
	}
	ord, err := strconv.Atoi(tok[i+1:])
	if err != nil || ord < 0 {
		return SymbolID{}, false
	}
	return SymbolID{Name: tok[:i], Ordinal: ord}, true
}

// Record is the parsed table entry of one symbol in one dump file.
// Calls and CalledBy keep the order in which the dump lists them and may
// contain identifiers that have no table entry of their own.
type Record struct {
	ID       SymbolID
	Name     string // display name, the part before the slash
	Calls    []SymbolID
	CalledBy []SymbolID
}

// File holds all records parsed from one dump file.
//
// The zero value is not usable; files are produced by [Parse] and
// [ParseFile] and must not be modified afterwards.
type File struct {
	Path    string
	records map[SymbolID]*Record
	order   []SymbolID
}

func newFile(path string) *File {
	return &File{Path: path, records: make(map[SymbolID]*Record)}
}

// add stores rec, replacing an earlier entry with the same identifier while
// keeping its original position.
func (f *File) add(rec *Record) {
	if _, ok := f.records[rec.ID]; !ok {
		f.order = append(f.order, rec.ID)
	}
	f.records[rec.ID] = rec
}

// Len returns the number of symbol records in the file.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.records)
}

// Record returns the record for id and true, or nil and false if the file
// has no table entry for it.
func (f *File) Record(id SymbolID) (*Record, bool) {
	rec, ok := f.records[id]
	return rec, ok
}

// Records returns all records in the order their headers appear in the dump.
func (f *File) Records() []*Record {
	if f == nil {
		return nil
	}
	out := make([]*Record, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.records[id])
	}
	return out
}
