package termcolor

import (
	"github.com/phyten/tagmark/internal/colorutil"
	"github.com/phyten/tagmark/internal/model"
)

// minTagContrast is the ratio tag colors must reach against the terminal
// background.
const minTagContrast = 3.0

// basic8 approximates the xterm defaults for SGR 30-37.
var basic8 = []colorutil.RGB{
	{R: 0, G: 0, B: 0},
	{R: 205, G: 0, B: 0},
	{R: 0, G: 205, B: 0},
	{R: 205, G: 205, B: 0},
	{R: 0, G: 0, B: 238},
	{R: 205, G: 0, B: 205},
	{R: 0, G: 205, B: 205},
	{R: 229, G: 229, B: 229},
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// LocationStyle dims file:line prefixes in annotated-line output.
func LocationStyle() Style {
	return Style{Dim: true}
}

// TagStyle maps a decoration style onto terminal attributes for profile.
// The foreground is adjusted for contrast against the scheme background;
// an explicit background color is kept as is and contrast is checked
// against it instead.
func TagStyle(style model.Style, scheme Scheme, profile Profile) Style {
	out := Style{
		Bold:          style.IsBold(),
		Italic:        style.IsItalic(),
		Underline:     style.HasDecoration("underline"),
		Strikethrough: style.HasDecoration("line-through"),
	}
	bg := scheme.Background()
	if rgb, ok := colorutil.Parse(style.BackgroundColor); ok {
		bg = rgb
		out.BGBasic, out.BG256, out.BGTrue = pick(rgb, profile)
	}
	if rgb, ok := colorutil.Parse(style.Color); ok {
		rgb = colorutil.EnsureContrast(rgb, bg, minTagContrast)
		out.FGBasic, out.FG256, out.FGTrue = pick(rgb, profile)
	}
	return out
}

func pick(rgb colorutil.RGB, profile Profile) (*int, *int, *[3]uint8) {
	switch profile {
	case ProfileTrueColor:
		v := [3]uint8{rgb.R, rgb.G, rgb.B}
		return nil, nil, &v
	case ProfileANSI256:
		idx := rgbToANSI256(rgb.R, rgb.G, rgb.B)
		return nil, &idx, nil
	default:
		idx := colorutil.Nearest(rgb, basic8)
		return &idx, nil, nil
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
