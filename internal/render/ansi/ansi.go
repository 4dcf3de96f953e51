// Package ansi paints tag ranges with terminal escape sequences.
package ansi

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/phyten/tagmark/internal/buffer"
	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/render"
	"github.com/phyten/tagmark/internal/termcolor"
	"github.com/phyten/tagmark/internal/textutil"
)

type Mode int

const (
	// AnnotatedLines prints only lines holding a range, prefixed with
	// path:line.
	AnnotatedLines Mode = iota
	// AllLines prints the whole document.
	AllLines
)

type Options struct {
	Mode        Mode
	LineNumbers bool
	Terminal    termcolor.Terminal
}

type handle int

type segment struct {
	start, end int
	style      int
}

// Renderer buffers the ranges of one document until WriteTo.
type Renderer struct {
	opts   Options
	styles []termcolor.Style
	doc    buffer.Document
	segs   map[int][]segment
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts, segs: make(map[int][]segment)}
}

func (r *Renderer) Allocate(_ string, style model.Style) render.Handle {
	r.styles = append(r.styles, r.opts.Terminal.Style(style))
	return handle(len(r.styles) - 1)
}

func (r *Renderer) Paint(doc buffer.Document, h render.Handle, ranges []model.Range) {
	idx, ok := h.(handle)
	if !ok {
		return
	}
	if r.doc != doc {
		r.doc = doc
		r.segs = make(map[int][]segment)
	}
	for _, rg := range ranges {
		line := doc.PositionAt(rg.Start).Line
		r.segs[line] = append(r.segs[line], segment{start: rg.Start, end: rg.End, style: int(idx)})
	}
}

// Reset drops buffered ranges.
func (r *Renderer) Reset() {
	r.doc = nil
	r.segs = make(map[int][]segment)
}

// Annotated reports the number of lines holding at least one range.
func (r *Renderer) Annotated() int {
	return len(r.segs)
}

// WriteTo prints the buffered document according to the configured mode.
func (r *Renderer) WriteTo(w io.Writer) (int64, error) {
	if r.doc == nil {
		return 0, nil
	}
	var lines []int
	if r.opts.Mode == AllLines {
		lines = make([]int, r.doc.LineCount())
		for i := range lines {
			lines[i] = i
		}
	} else {
		for n := range r.segs {
			lines = append(lines, n)
		}
		sort.Ints(lines)
	}

	enabled := r.opts.Terminal.Enabled
	width := len(strconv.Itoa(r.doc.LineCount()))
	var b strings.Builder
	for _, n := range lines {
		switch {
		case r.opts.Mode == AnnotatedLines:
			loc := fmt.Sprintf("%s:%d:", r.doc.Path(), n+1)
			b.WriteString(termcolor.Apply(termcolor.LocationStyle(), loc, enabled))
			b.WriteByte(' ')
		case r.opts.LineNumbers:
			num := textutil.PadLeft(strconv.Itoa(n+1), width)
			b.WriteString(termcolor.Apply(termcolor.LocationStyle(), num+" |", enabled))
			b.WriteByte(' ')
		}
		text := r.doc.LineText(n)
		start := r.doc.OffsetAt(model.Position{Line: n})
		b.WriteString(r.paintLine(text, start, r.segs[n]))
		b.WriteByte('\n')
	}
	written, err := io.WriteString(w, b.String())
	return int64(written), err
}

// paintLine styles segments of one line. Segments overlapping an earlier
// one are skipped; segments running past the line end are clipped.
func (r *Renderer) paintLine(text string, base int, segs []segment) string {
	if len(segs) == 0 {
		return text
	}
	sorted := append([]segment(nil), segs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var b strings.Builder
	cursor := 0
	for _, s := range sorted {
		from, to := s.start-base, s.end-base
		if to > len(text) {
			to = len(text)
		}
		if from < cursor || from >= to {
			continue
		}
		b.WriteString(text[cursor:from])
		b.WriteString(termcolor.Apply(r.styles[s.style], text[from:to], r.opts.Terminal.Enabled))
		cursor = to
	}
	b.WriteString(text[cursor:])
	return b.String()
}
