package tags

import (
	"strings"

	"github.com/phyten/tagmark/internal/model"
)

// NormalizeStyle folds the shorthand booleans into the richer properties.
// Explicit properties always win over shorthand.
func NormalizeStyle(s model.Style) model.Style {
	if s.FontWeight == "" && s.Bold {
		s.FontWeight = "bold"
	}
	if s.FontStyle == "" && s.Italic {
		s.FontStyle = "italic"
	}
	if s.TextDecoration == "" {
		var parts []string
		if s.Underline {
			parts = append(parts, "underline")
		}
		if s.Strikethrough {
			parts = append(parts, "line-through")
		}
		s.TextDecoration = strings.Join(parts, " ")
	}
	if len(s.Extra) > 0 {
		extra := make(map[string]string, len(s.Extra))
		for k, v := range s.Extra {
			extra[k] = v
		}
		s.Extra = extra
	}
	return s
}

// DefaultSpecs is the stock tag set used when configuration defines none.
func DefaultSpecs() []Spec {
	return []Spec{
		{Tags: []string{"!"}, Style: model.Style{Color: "#FF2D00"}},
		{Tags: []string{"?"}, Style: model.Style{Color: "#3498DB"}},
		{Tags: []string{"//"}, Style: model.Style{Color: "#474747", Strikethrough: true}},
		{Tags: []string{"todo"}, Style: model.Style{Color: "#FF8C00"}},
		{Tags: []string{"*"}, Style: model.Style{Color: "#98C379"}},
	}
}
