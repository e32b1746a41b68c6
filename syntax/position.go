package syntax

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a location in source text.
// Line is 1-based, Character and Offset are 0-based.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
	Offset    int `json:"offset"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character+1)
}

// Range is a span of source text from Start up to End.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether pos falls inside the range.
func (r Range) Contains(pos Position) bool {
	return pos.Offset >= r.Start.Offset && pos.Offset < r.End.Offset
}

// lineIndex maps byte offsets to positions. Tree-sitter columns count
// bytes; Character counts runes.
type lineIndex struct {
	src    string
	starts []int
}

func newLineIndex(src string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

func (li *lineIndex) position(off int) Position {
	if off > len(li.src) {
		off = len(li.src)
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > off }) - 1
	return Position{
		Line:      line + 1,
		Character: utf8.RuneCountInString(li.src[li.starts[line]:off]),
		Offset:    off,
	}
}

// at converts a 1-based line and 0-based byte column.
func (li *lineIndex) at(line, column int) Position {
	if line < 1 {
		line = 1
	}
	if line > len(li.starts) {
		line = len(li.starts)
	}
	return li.position(li.starts[line-1] + column)
}

func (li *lineIndex) span(start, end uint32) Range {
	return Range{Start: li.position(int(start)), End: li.position(int(end))}
}
