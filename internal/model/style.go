package model

import "strings"

// Style is the visual descriptor attached to a tag. The scanning core never
// interprets it; renderers do.
type Style struct {
	Color           string            `json:"color,omitempty"`
	BackgroundColor string            `json:"backgroundColor,omitempty"`
	FontWeight      string            `json:"fontWeight,omitempty"`
	FontStyle       string            `json:"fontStyle,omitempty"`
	TextDecoration  string            `json:"textDecoration,omitempty"`
	Bold            bool              `json:"bold,omitempty"`
	Italic          bool              `json:"italic,omitempty"`
	Underline       bool              `json:"underline,omitempty"`
	Strikethrough   bool              `json:"strikethrough,omitempty"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// IsBold reports whether the normalized weight asks for bold text.
func (s Style) IsBold() bool {
	switch s.FontWeight {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// IsItalic reports whether the normalized font style is italic or oblique.
func (s Style) IsItalic() bool {
	return s.FontStyle == "italic" || s.FontStyle == "oblique"
}

// HasDecoration reports whether TextDecoration lists the given keyword.
func (s Style) HasDecoration(keyword string) bool {
	for _, part := range strings.Fields(s.TextDecoration) {
		if part == keyword {
			return true
		}
	}
	return false
}
