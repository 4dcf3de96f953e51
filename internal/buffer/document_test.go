package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/tagmark/internal/model"
)

func TestPositionAtCountsRunes(t *testing.T) {
	doc := New("a.go", "go", "héllo\n// TODO ünïcode\r\nlast")

	assert.Equal(t, model.Position{Line: 0, Character: 0}, doc.PositionAt(0))
	assert.Equal(t, model.Position{Line: 0, Character: 5}, doc.PositionAt(6))
	assert.Equal(t, model.Position{Line: 1, Character: 3}, doc.PositionAt(10))
	assert.Equal(t, 3, doc.LineCount())
	assert.Equal(t, "// TODO ünïcode", doc.LineText(1))
	assert.Equal(t, "last", doc.LineText(2))
	assert.Equal(t, "", doc.LineText(3))
}

func TestPositionAtClampsOffsets(t *testing.T) {
	doc := New("", "", "ab\ncd")
	assert.Equal(t, model.Position{Line: 0, Character: 0}, doc.PositionAt(-4))
	assert.Equal(t, model.Position{Line: 1, Character: 2}, doc.PositionAt(99))
}

func TestOffsetAtRoundTrip(t *testing.T) {
	text := "first\n  ä second\nthird"
	doc := New("", "", text)
	for off := range text {
		require.Equal(t, off, doc.OffsetAt(doc.PositionAt(off)), "offset %d", off)
	}
	require.Equal(t, len(text), doc.OffsetAt(doc.PositionAt(len(text))))
	require.Equal(t, len(text), doc.OffsetAt(model.Position{Line: 7}))
}

func TestWithLanguageKeepsText(t *testing.T) {
	doc := New("x.txt", "plaintext", "TODO")
	other := doc.WithLanguage("python")
	assert.Equal(t, "python", other.Language())
	assert.Equal(t, "plaintext", doc.Language())
	assert.Equal(t, doc.Text(), other.Text())
}
