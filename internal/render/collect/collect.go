// Package collect turns painted ranges into annotation records.
package collect

import (
	"sort"

	"github.com/phyten/tagmark/internal/buffer"
	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/render"
)

type handle int

// Renderer records every painted range as a model.Annotation. Handles are
// indexes into a label table shared by all forks.
type Renderer struct {
	labels *[]string
	items  []model.Annotation
}

func New() *Renderer {
	return &Renderer{labels: new([]string)}
}

// Fork returns a renderer that resolves the same handles into its own
// record list. Allocate must not be called once forks are in use.
func (r *Renderer) Fork() *Renderer {
	return &Renderer{labels: r.labels}
}

func (r *Renderer) Allocate(label string, _ model.Style) render.Handle {
	*r.labels = append(*r.labels, label)
	return handle(len(*r.labels) - 1)
}

func (r *Renderer) Paint(doc buffer.Document, h render.Handle, ranges []model.Range) {
	if len(ranges) == 0 {
		return
	}
	label := r.label(h)
	text := doc.Text()
	for _, rg := range ranges {
		if rg.Start < 0 || rg.End > len(text) || rg.Start > rg.End {
			continue
		}
		pos := doc.PositionAt(rg.Start)
		r.items = append(r.items, model.Annotation{
			File:   doc.Path(),
			Lang:   doc.Language(),
			Tag:    label,
			Kind:   rg.Kind,
			Line:   pos.Line + 1,
			Column: pos.Character + 1,
			Text:   text[rg.Start:rg.End],
			Range:  rg,
		})
	}
}

func (r *Renderer) label(h render.Handle) string {
	idx, ok := h.(handle)
	if !ok || int(idx) < 0 || int(idx) >= len(*r.labels) {
		return ""
	}
	return (*r.labels)[idx]
}

// Annotations returns the records painted so far ordered by file, line and
// column.
func (r *Renderer) Annotations() []model.Annotation {
	out := append([]model.Annotation(nil), r.items...)
	Sort(out)
	return out
}

// Take returns the ordered records and forgets them.
func (r *Renderer) Take() []model.Annotation {
	out := r.Annotations()
	r.items = r.items[:0]
	return out
}

// Sort orders annotations by file, line and column. Ties keep registry
// order.
func Sort(items []model.Annotation) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
