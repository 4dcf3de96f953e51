// Package render defines the boundary between the scanning core and the
// code that paints ranges.
package render

import (
	"github.com/phyten/tagmark/internal/buffer"
	"github.com/phyten/tagmark/internal/model"
)

// Handle is an opaque paintable style owned by a renderer.
type Handle interface{}

// Allocator hands out one Handle per tag style.
type Allocator interface {
	Allocate(label string, style model.Style) Handle
}

// Renderer paints the ranges collected for one tag during a scan pass.
// The ranges slice is reused by the caller once Paint returns.
type Renderer interface {
	Allocator
	Paint(doc buffer.Document, h Handle, ranges []model.Range)
}

// Discard is a Renderer that drops everything.
var Discard Renderer = discard{}

type discard struct{}

func (discard) Allocate(string, model.Style) Handle          { return nil }
func (discard) Paint(buffer.Document, Handle, []model.Range) {}
