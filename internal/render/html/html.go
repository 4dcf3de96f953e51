// Package html renders a document as a standalone HTML page with tag
// ranges wrapped in styled spans.
package html

import (
	"html"
	"html/template"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/phyten/tagmark/internal/buffer"
	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/render"
)

type handle int

type tagStyle struct {
	label string
	css   string
}

type span struct {
	start, end int
	style      int
}

// Renderer buffers the ranges of one document until WriteTo.
type Renderer struct {
	Title  string
	styles []tagStyle
	doc    buffer.Document
	spans  []span
}

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Allocate(label string, style model.Style) render.Handle {
	r.styles = append(r.styles, tagStyle{label: label, css: CSS(style)})
	return handle(len(r.styles) - 1)
}

func (r *Renderer) Paint(doc buffer.Document, h render.Handle, ranges []model.Range) {
	idx, ok := h.(handle)
	if !ok {
		return
	}
	if r.doc != doc {
		r.doc = doc
		r.spans = r.spans[:0]
	}
	for _, rg := range ranges {
		r.spans = append(r.spans, span{start: rg.Start, end: rg.End, style: int(idx)})
	}
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; background: #1e1e1e; color: #d4d4d4; }
pre { margin: 0; padding: 1em; font: 13px/1.5 ui-monospace, SFMono-Regular, Menlo, monospace; }
</style>
</head>
<body>
<pre id="out">{{.Body}}</pre>
</body>
</html>
`))

// WriteTo writes the page for the buffered document.
func (r *Renderer) WriteTo(w io.Writer) (int64, error) {
	title := r.Title
	text := ""
	if r.doc != nil {
		text = r.doc.Text()
		if title == "" {
			title = r.doc.Path()
		}
	}
	cw := &countingWriter{w: w}
	err := page.Execute(cw, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(r.body(text))})
	return cw.n, err
}

// body escapes text and wraps every non-overlapping span.
func (r *Renderer) body(text string) string {
	sorted := append([]span(nil), r.spans...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var b strings.Builder
	cursor := 0
	for _, s := range sorted {
		if s.start < cursor || s.start >= s.end || s.end > len(text) {
			continue
		}
		st := r.styles[s.style]
		b.WriteString(html.EscapeString(text[cursor:s.start]))
		b.WriteString(`<span class="tag" data-tag="`)
		b.WriteString(html.EscapeString(st.label))
		b.WriteString(`" style="`)
		b.WriteString(html.EscapeString(st.css))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(text[s.start:s.end]))
		b.WriteString(`</span>`)
		cursor = s.end
	}
	b.WriteString(html.EscapeString(text[cursor:]))
	return b.String()
}

var (
	propName  = regexp.MustCompile(`^-?[a-z][a-z0-9-]*$`)
	upperRune = regexp.MustCompile(`[A-Z]`)
)

// CSS builds an inline declaration list from a normalized style. Extra
// properties accept camelCase or kebab-case names; names or values that
// could escape the declaration are dropped.
func CSS(style model.Style) string {
	decls := [][2]string{
		{"color", style.Color},
		{"background-color", style.BackgroundColor},
		{"font-weight", style.FontWeight},
		{"font-style", style.FontStyle},
		{"text-decoration", style.TextDecoration},
	}
	keys := make([]string, 0, len(style.Extra))
	for k := range style.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		decls = append(decls, [2]string{kebab(k), style.Extra[k]})
	}

	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		name, value := d[0], strings.TrimSpace(d[1])
		if value == "" || !propName.MatchString(name) || !safeValue(value) {
			continue
		}
		parts = append(parts, name+": "+value)
	}
	return strings.Join(parts, "; ")
}

func kebab(name string) string {
	name = strings.TrimSpace(name)
	return upperRune.ReplaceAllStringFunc(name, func(s string) string {
		return "-" + strings.ToLower(s)
	})
}

func safeValue(v string) bool {
	if strings.ContainsAny(v, ";{}<>\"\\") {
		return false
	}
	lower := strings.ToLower(v)
	return !strings.Contains(lower, "url(") && !strings.Contains(lower, "expression(")
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
