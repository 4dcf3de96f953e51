// Package scan runs compiled comment patterns over buffer text and fills the
// match buckets of a tag registry.
//
// Matching is textual. A delimiter inside a string literal counts as a real
// comment, and nested block comments are not tracked.
package scan

import (
	"github.com/phyten/tagmark/internal/grammar"
	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/tags"
)

// Scan runs the single-line pass and then the block pass. It returns the
// number of ranges appended to reg.
func Scan(text string, g grammar.Grammar, m *grammar.Matchers, reg *tags.Registry) int {
	if !g.Supported || m.Empty() || reg == nil {
		return 0
	}
	return ScanSingleLine(text, g, m, reg) + ScanBlocks(text, g, m, reg)
}

// ScanSingleLine appends a range for every single-line comment whose tag
// resolves in reg. The range covers the tag and the rest of the line.
func ScanSingleLine(text string, g grammar.Grammar, m *grammar.Matchers, reg *tags.Registry) int {
	if m == nil || m.SingleLine == nil || !g.SingleLine {
		return 0
	}
	re := m.SingleLine
	tagIdx, restIdx := re.SubexpIndex("tag"), re.SubexpIndex("rest")
	kind := model.MatchKindLine
	if g.PlainText {
		kind = model.MatchKindPlainText
	}

	n := 0
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		if g.IgnoreFirstLine && loc[0] == 0 {
			continue
		}
		start, end := loc[2*tagIdx], loc[2*tagIdx+1]
		if start < 0 {
			continue
		}
		if restEnd := loc[2*restIdx+1]; restEnd > end {
			end = restEnd
		}
		def := reg.Lookup(text[start:loc[2*tagIdx+1]])
		if def == nil {
			continue
		}
		def.Append(model.Range{Start: start, End: trimCR(text, start, end), Kind: kind})
		n++
	}
	return n
}

// ScanBlocks isolates every block comment and appends a range for each tag
// line inside it, from the tag to the end of that line.
func ScanBlocks(text string, g grammar.Grammar, m *grammar.Matchers, reg *tags.Registry) int {
	if m == nil || m.Block == nil || m.BlockTag == nil || !g.Multiline {
		return 0
	}
	tagIdx := m.BlockTag.SubexpIndex("tag")

	n := 0
	for _, block := range m.Block.FindAllStringIndex(text, -1) {
		base := block[0]
		body := text[block[0]:block[1]]
		for _, loc := range m.BlockTag.FindAllStringSubmatchIndex(body, -1) {
			start, end := loc[2*tagIdx], loc[2*tagIdx+1]
			if start < 0 {
				continue
			}
			def := reg.Lookup(body[start:end])
			if def == nil {
				continue
			}
			def.Append(model.Range{
				Start: base + start,
				End:   base + trimCR(body, start, loc[1]),
				Kind:  model.MatchKindBlock,
			})
			n++
		}
	}
	return n
}

func trimCR(text string, start, end int) int {
	if end > start && text[end-1] == '\r' {
		return end - 1
	}
	return end
}
