package colorutil

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var named = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"magenta": "#ff00ff",
	"cyan":    "#00ffff",
	"gray":    "#808080",
	"grey":    "#808080",
}

// Parse reads "#rgb", "#rrggbb" (the leading "#" is optional) or a basic
// CSS color name. "transparent" and anything unrecognized report false.
func Parse(s string) (RGB, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "transparent" {
		return RGB{}, false
	}
	if hex, ok := named[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	// #rrggbbaa: alpha is ignored
	if len(s) == 9 {
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, true
}

// Hex formats c as "#rrggbb".
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend mixes a toward b in Lab space; t=0 is a, t=1 is b.
func Blend(a, b RGB, t float64) RGB {
	r, g, bl := a.colorful().BlendLab(b.colorful(), t).Clamped().RGB255()
	return RGB{r, g, bl}
}

// Nearest returns the index of the palette entry closest to c, measured
// in Lab space. It returns -1 for an empty palette.
func Nearest(c RGB, palette []RGB) int {
	best, bestDist := -1, 0.0
	for i, p := range palette {
		d := c.colorful().DistanceLab(p.colorful())
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
