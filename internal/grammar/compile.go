package grammar

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Matchers are the patterns compiled for one grammar and tag set. A nil
// pattern disables its pass.
type Matchers struct {
	SingleLine *regexp.Regexp
	Block      *regexp.Regexp
	BlockTag   *regexp.Regexp
}

// Empty reports whether no pass can run.
func (m *Matchers) Empty() bool {
	return m == nil || (m.SingleLine == nil && m.Block == nil && m.BlockTag == nil)
}

// Compile builds the patterns for g. identifiers must already be escaped.
func Compile(g Grammar, identifiers []string) (*Matchers, error) {
	m := &Matchers{}
	if !g.Supported || len(identifiers) == 0 {
		return m, nil
	}
	tags := strings.Join(identifiers, "|")

	if g.SingleLine {
		expr, err := singleLineExpr(g, tags)
		if err != nil {
			return nil, err
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.Errorf("%s: single-line pattern: %w", g.Language, err)
		}
		m.SingleLine = re
	}

	if g.Multiline && !g.PlainText {
		lead := `[ \t]*`
		start, end := regexp.QuoteMeta(g.BlockStart), regexp.QuoteMeta(g.BlockEnd)
		if g.DocStyle {
			lead = `[ \t]*\*[ \t]*`
			start, end = `/\*\*`, `\*/`
		}
		tagExpr := `(?im)^(?P<lead>` + lead + `)(?P<tag>` + tags + `)[ :]*(?:(?P<rest>[^*/\r\n][^\r\n]*)|\r?$)`
		blockExpr := `(?m)(?:^|[ \t])(?:` + start + `\s)+[\s\S]*?` + end

		tagRe, err := regexp.Compile(tagExpr)
		if err != nil {
			return nil, errors.Errorf("%s: block tag pattern: %w", g.Language, err)
		}
		blockRe, err := regexp.Compile(blockExpr)
		if err != nil {
			return nil, errors.Errorf("%s: block pattern: %w", g.Language, err)
		}
		m.BlockTag, m.Block = tagRe, blockRe
	}
	return m, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(g Grammar, identifiers []string) *Matchers {
	m, err := Compile(g, identifiers)
	if err != nil {
		panic(err)
	}
	return m
}

func singleLineExpr(g Grammar, tags string) (string, error) {
	if g.PlainText {
		return `(?im)^[ \t]*(?P<tag>` + tags + `)(?P<rest>.*)`, nil
	}
	if len(g.LineDelimiters) == 0 {
		return "", errors.Errorf("%s: single-line comments enabled without delimiters", g.Language)
	}
	delims := make([]string, len(g.LineDelimiters))
	for i, d := range g.LineDelimiters {
		delims[i] = regexp.QuoteMeta(d)
	}
	return `(?i)(?:` + strings.Join(delims, "|") + `)+[ \t]*(?P<tag>` + tags + `)(?P<rest>.*)`, nil
}
