// Package tags builds the ordered set of annotation tags a scan looks for.
package tags

import (
	"regexp"
	"strings"

	"github.com/phyten/tagmark/internal/buffer"
	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/render"
)

// Spec is one configured tag entry: a set of synonyms sharing a style.
type Spec struct {
	Tags  []string
	Style model.Style
}

// Definition is a normalized tag with its match bucket.
type Definition struct {
	Tags    []string
	Escaped []string
	Style   model.Style
	Handle  render.Handle

	ranges []model.Range
}

// Label is the first identity string, used for display.
func (d *Definition) Label() string {
	if len(d.Tags) == 0 {
		return ""
	}
	return d.Tags[0]
}

// Matches reports whether token equals one of the identity strings,
// ignoring case. Empty identities never match.
func (d *Definition) Matches(token string) bool {
	for _, t := range d.Tags {
		if t != "" && strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

func (d *Definition) Append(r model.Range)  { d.ranges = append(d.ranges, r) }
func (d *Definition) Ranges() []model.Range { return d.ranges }
func (d *Definition) Reset()                { d.ranges = d.ranges[:0] }

// Registry is the ordered list of tag definitions.
type Registry struct {
	defs []*Definition
}

// New normalizes specs in order and allocates one style handle per entry.
func New(specs []Spec, alloc render.Allocator) *Registry {
	if alloc == nil {
		alloc = render.Discard
	}
	reg := &Registry{defs: make([]*Definition, 0, len(specs))}
	for _, spec := range specs {
		ids := make([]string, len(spec.Tags))
		copy(ids, spec.Tags)
		escaped := make([]string, len(ids))
		for i, id := range ids {
			escaped[i] = Escape(id)
		}
		def := &Definition{
			Tags:    ids,
			Escaped: escaped,
			Style:   NormalizeStyle(spec.Style),
		}
		def.Handle = alloc.Allocate(def.Label(), def.Style)
		reg.defs = append(reg.defs, def)
	}
	return reg
}

func (r *Registry) Definitions() []*Definition { return r.defs }
func (r *Registry) Len() int                   { return len(r.defs) }

// Identifiers returns every non-empty escaped identity in registry order.
func (r *Registry) Identifiers() []string {
	var out []string
	for _, d := range r.defs {
		for _, e := range d.Escaped {
			if e == "" {
				continue
			}
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns the first definition owning token, or nil.
func (r *Registry) Lookup(token string) *Definition {
	for _, d := range r.defs {
		if d.Matches(token) {
			return d
		}
	}
	return nil
}

// Snapshot shares definitions and handles but starts with empty buckets.
func (r *Registry) Snapshot() *Registry {
	out := &Registry{defs: make([]*Definition, len(r.defs))}
	for i, d := range r.defs {
		cp := *d
		cp.ranges = nil
		out.defs[i] = &cp
	}
	return out
}

// Reset empties every bucket.
func (r *Registry) Reset() {
	for _, d := range r.defs {
		d.Reset()
	}
}

// Flush paints each bucket and clears it for the next pass.
func (r *Registry) Flush(doc buffer.Document, rd render.Renderer) {
	for _, d := range r.defs {
		rd.Paint(doc, d.Handle, d.ranges)
		d.Reset()
	}
}

// Count returns the number of ranges currently buffered.
func (r *Registry) Count() int {
	n := 0
	for _, d := range r.defs {
		n += len(d.ranges)
	}
	return n
}

// Fingerprint identifies the identity sets; matchers compiled for one
// fingerprint are valid for any registry with the same value.
func (r *Registry) Fingerprint() string {
	var b strings.Builder
	for _, d := range r.defs {
		b.WriteString(strings.Join(d.Escaped, "\x1f"))
		b.WriteByte('\x1e')
	}
	return b.String()
}

var metaChars = regexp.MustCompile(`([()[{*+.$^\\|?])`)

// Escape makes id safe inside a pattern alternation.
func Escape(id string) string {
	return strings.ReplaceAll(metaChars.ReplaceAllString(id, `\$1`), "/", `\/`)
}
