package tags

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/tagmark/internal/buffer"
	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/render"
)

type countingAllocator struct {
	labels []string
}

func (c *countingAllocator) Allocate(label string, style model.Style) render.Handle {
	c.labels = append(c.labels, label)
	return len(c.labels)
}

type paintCall struct {
	handle render.Handle
	ranges []model.Range
}

type recordingRenderer struct {
	countingAllocator
	calls []paintCall
}

func (r *recordingRenderer) Paint(_ buffer.Document, h render.Handle, ranges []model.Range) {
	cp := append([]model.Range(nil), ranges...)
	r.calls = append(r.calls, paintCall{handle: h, ranges: cp})
}

func TestEscapeQuotesMetaCharacters(t *testing.T) {
	cases := map[string]string{
		"TODO":    "TODO",
		"?":       `\?`,
		"*":       `\*`,
		"//":      `\/\/`,
		"a.b":     `a\.b`,
		"(x)":     `\(x\)`,
		"[x]":     `\[x]`,
		"{1}":     `\{1}`,
		"$^|+":    `\$\^\|\+`,
		`back\sl`: `back\\sl`,
		"!":       "!",
	}
	for in, want := range cases {
		assert.Equal(t, want, Escape(in), "Escape(%q)", in)
	}
}

func TestEscapedIdentifiersMatchLiterally(t *testing.T) {
	for _, id := range []string{"?", "*", "//", "a.b", "(x)", "[x]", "{1}", "$^|+", `back\sl`} {
		re, err := regexp.Compile("^(?:" + Escape(id) + ")$")
		require.NoError(t, err, id)
		assert.True(t, re.MatchString(id), id)
	}
}

func TestNewPreservesOrderAndAllocatesOncePerTag(t *testing.T) {
	alloc := &countingAllocator{}
	reg := New([]Spec{
		{Tags: []string{"TODO", "FIXME"}},
		{Tags: []string{"todo"}},
		{Tags: []string{"NOTE"}},
	}, alloc)

	require.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"TODO", "todo", "NOTE"}, alloc.labels)
	assert.Equal(t, []string{"TODO", "FIXME", "todo", "NOTE"}, reg.Identifiers())

	// first definition in registry order wins for duplicate identities
	def := reg.Lookup("ToDo")
	require.NotNil(t, def)
	assert.Equal(t, 1, def.Handle)
	assert.Same(t, reg.Definitions()[0], reg.Lookup("fixme"))
	assert.Nil(t, reg.Lookup("HACK"))
}

func TestMalformedEntriesNeverMatch(t *testing.T) {
	reg := New([]Spec{{Tags: []string{""}}, {Tags: nil}, {Tags: []string{"TODO"}}}, nil)
	require.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"TODO"}, reg.Identifiers())
	assert.Nil(t, reg.Lookup(""))
	assert.Equal(t, "", reg.Definitions()[1].Label())
}

func TestNormalizeStyleShorthandNeverOverrides(t *testing.T) {
	got := NormalizeStyle(model.Style{Bold: true, Italic: true, Underline: true, Strikethrough: true})
	assert.Equal(t, "bold", got.FontWeight)
	assert.Equal(t, "italic", got.FontStyle)
	assert.Equal(t, "underline line-through", got.TextDecoration)

	got = NormalizeStyle(model.Style{Bold: true, FontWeight: "300", Italic: true, FontStyle: "normal", Underline: true, TextDecoration: "overline"})
	assert.Equal(t, "300", got.FontWeight)
	assert.Equal(t, "normal", got.FontStyle)
	assert.Equal(t, "overline", got.TextDecoration)

	got = NormalizeStyle(model.Style{})
	assert.Equal(t, "", got.TextDecoration)
}

func TestFlushPaintsThenClearsBuckets(t *testing.T) {
	rd := &recordingRenderer{}
	reg := New([]Spec{{Tags: []string{"TODO"}}, {Tags: []string{"NOTE"}}}, rd)
	reg.Definitions()[0].Append(model.Range{Start: 1, End: 5})
	reg.Definitions()[0].Append(model.Range{Start: 9, End: 12})
	require.Equal(t, 2, reg.Count())

	reg.Flush(nil, rd)

	require.Len(t, rd.calls, 2)
	assert.Equal(t, 1, rd.calls[0].handle)
	assert.Equal(t, []model.Range{{Start: 1, End: 5}, {Start: 9, End: 12}}, rd.calls[0].ranges)
	assert.Empty(t, rd.calls[1].ranges)
	assert.Zero(t, reg.Count())
	assert.Empty(t, reg.Definitions()[0].Ranges())
}

func TestSnapshotSharesHandlesNotBuckets(t *testing.T) {
	alloc := &countingAllocator{}
	reg := New([]Spec{{Tags: []string{"TODO"}}}, alloc)
	reg.Definitions()[0].Append(model.Range{Start: 0, End: 4})

	snap := reg.Snapshot()
	assert.Equal(t, reg.Fingerprint(), snap.Fingerprint())
	assert.Equal(t, reg.Definitions()[0].Handle, snap.Definitions()[0].Handle)
	assert.Zero(t, snap.Count())

	snap.Definitions()[0].Append(model.Range{Start: 5, End: 9})
	assert.Equal(t, 1, reg.Count())
	assert.Len(t, alloc.labels, 1)
}

func TestFingerprintChangesWithIdentities(t *testing.T) {
	a := New([]Spec{{Tags: []string{"TODO"}}}, nil)
	b := New([]Spec{{Tags: []string{"TODO", "FIXME"}}}, nil)
	c := New([]Spec{{Tags: []string{"TODO"}}, {Tags: []string{"FIXME"}}}, nil)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, b.Fingerprint(), c.Fingerprint())
}
