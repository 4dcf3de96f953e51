package termcolor

import (
	"strconv"
	"strings"

	"github.com/phyten/tagmark/internal/colorutil"
)

// Scheme is the terminal background brightness that tag colors are
// contrasted against.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

func (s Scheme) String() string {
	switch s {
	case SchemeDark:
		return "dark"
	case SchemeLight:
		return "light"
	}
	return "unknown"
}

// Background is the reference color for contrast checks. Unknown schemes
// are treated as dark.
func (s Scheme) Background() colorutil.RGB {
	if s == SchemeLight {
		return colorutil.LightBackground
	}
	return colorutil.DarkBackground
}

// DetectScheme reads COLORFGBG ("fg;bg" or "fg;default;bg"), then falls
// back to a TERM name containing "light". Anything else is dark.
func DetectScheme(env map[string]string) Scheme {
	if env == nil {
		return SchemeDark
	}
	if raw := strings.TrimSpace(env["COLORFGBG"]); raw != "" {
		parts := strings.Split(raw, ";")
		bgRaw := strings.TrimSpace(parts[len(parts)-1])
		if bgRaw == "" && len(parts) >= 2 {
			bgRaw = strings.TrimSpace(parts[len(parts)-2])
		}
		if bg, err := strconv.Atoi(bgRaw); err == nil && bg >= 0 {
			// 7 (white) and the bright range 8-15 except 8 (grey) are light
			if bg == 7 || bg > 8 {
				return SchemeLight
			}
			return SchemeDark
		}
	}
	termName := strings.ToLower(strings.TrimSpace(env["TERM"]))
	if strings.Contains(termName, "light") {
		return SchemeLight
	}
	return SchemeDark
}
