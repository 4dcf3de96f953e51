package termcolor

import (
	"testing"

	"github.com/phyten/tagmark/internal/colorutil"
	"github.com/phyten/tagmark/internal/model"
)

func TestHeaderStyle(t *testing.T) {
	s := HeaderStyle()
	if !s.Bold || !s.Underline {
		t.Fatalf("header style should enable bold+underline: %+v", s)
	}
}

func TestTagStyleDecorations(t *testing.T) {
	s := TagStyle(model.Style{FontWeight: "bold", FontStyle: "italic", TextDecoration: "underline line-through"}, SchemeDark, ProfileBasic8)
	if !s.Bold || !s.Italic || !s.Underline || !s.Strikethrough {
		t.Fatalf("decorations not mapped: %+v", s)
	}
	if s.FGBasic != nil || s.FG256 != nil || s.FGTrue != nil {
		t.Fatalf("no color configured, got %+v", s)
	}
}

func TestTagStyleProfiles(t *testing.T) {
	red := model.Style{Color: "#FF2D00"}

	basic := TagStyle(red, SchemeDark, ProfileBasic8)
	if basic.FGBasic == nil || *basic.FGBasic != 1 {
		t.Fatalf("basic profile should map to red: %+v", basic)
	}
	s256 := TagStyle(red, SchemeDark, ProfileANSI256)
	if s256.FG256 == nil || *s256.FG256 != rgbToANSI256(255, 45, 0) {
		t.Fatalf("256 profile mismatch: %+v", s256)
	}
	tc := TagStyle(red, SchemeDark, ProfileTrueColor)
	if tc.FGTrue == nil || *tc.FGTrue != [3]uint8{255, 45, 0} {
		t.Fatalf("truecolor should keep readable color as is: %+v", tc)
	}
}

func TestTagStyleRespectsScheme(t *testing.T) {
	grey := model.Style{Color: "#474747"}
	dark := TagStyle(grey, SchemeDark, ProfileTrueColor)
	if dark.FGTrue == nil {
		t.Fatalf("missing fg: %+v", dark)
	}
	rgb := *dark.FGTrue
	got := colorutil.ContrastRatio(colorutil.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}, colorutil.DarkBackground)
	if got < minTagContrast {
		t.Fatalf("dark scheme contrast %.2f < %.2f (rgb=%v)", got, minTagContrast, rgb)
	}
	light := TagStyle(grey, SchemeLight, ProfileTrueColor)
	if *light.FGTrue != [3]uint8{0x47, 0x47, 0x47} {
		t.Fatalf("grey is readable on light backgrounds, got %v", *light.FGTrue)
	}
}

func TestTagStyleBackground(t *testing.T) {
	s := TagStyle(model.Style{Color: "#ffffff", BackgroundColor: "#000080"}, SchemeLight, ProfileTrueColor)
	if s.BGTrue == nil || *s.BGTrue != [3]uint8{0, 0, 128} {
		t.Fatalf("background not mapped: %+v", s)
	}
	if *s.FGTrue != [3]uint8{255, 255, 255} {
		t.Fatalf("white on navy should be kept, got %v", *s.FGTrue)
	}
}
