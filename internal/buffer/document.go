// Package buffer holds the read-only view of a document that scans and
// renderers share.
package buffer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/phyten/tagmark/internal/model"
)

// Document is the host buffer a scan runs over.
type Document interface {
	Path() string
	Language() string
	Text() string
	// PositionAt converts a byte offset into a zero-based line/character
	// position. Offsets outside the text are clamped.
	PositionAt(offset int) model.Position
	// OffsetAt is the inverse of PositionAt.
	OffsetAt(pos model.Position) int
	LineCount() int
	// LineText returns line n without its terminator.
	LineText(n int) string
}

// Text is an immutable in-memory Document.
type Text struct {
	path  string
	lang  string
	text  string
	lines []int
}

// New builds a Text and indexes its line starts.
func New(path, lang, text string) *Text {
	return &Text{path: path, lang: lang, text: text, lines: lineOffsets(text)}
}

func (t *Text) Path() string     { return t.path }
func (t *Text) Language() string { return t.lang }
func (t *Text) Text() string     { return t.text }
func (t *Text) LineCount() int   { return len(t.lines) }

// WithLanguage returns a copy of t tagged with another language id.
func (t *Text) WithLanguage(lang string) *Text {
	cp := *t
	cp.lang = lang
	return &cp
}

func (t *Text) PositionAt(offset int) model.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.text) {
		offset = len(t.text)
	}
	idx := sort.Search(len(t.lines), func(i int) bool { return t.lines[i] > offset })
	line := idx - 1
	if line < 0 {
		line = 0
	}
	start := t.lines[line]
	return model.Position{Line: line, Character: utf8.RuneCountInString(t.text[start:offset])}
}

func (t *Text) OffsetAt(pos model.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(t.lines) {
		return len(t.text)
	}
	start := t.lines[pos.Line]
	end := t.lineEnd(pos.Line)
	off := start
	for n := 0; n < pos.Character && off < end; n++ {
		_, size := utf8.DecodeRuneInString(t.text[off:end])
		off += size
	}
	return off
}

func (t *Text) LineText(n int) string {
	if n < 0 || n >= len(t.lines) {
		return ""
	}
	return strings.TrimSuffix(t.text[t.lines[n]:t.lineEnd(n)], "\r")
}

// lineEnd is the offset of the '\n' ending line n, or len(text).
func (t *Text) lineEnd(n int) int {
	if n+1 < len(t.lines) {
		return t.lines[n+1] - 1
	}
	return len(t.text)
}

func lineOffsets(text string) []int {
	offsets := make([]int, 0, strings.Count(text, "\n")+1)
	offsets = append(offsets, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
