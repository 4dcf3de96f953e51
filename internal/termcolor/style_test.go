package termcolor

import "testing"

func TestApply(t *testing.T) {
	boldRed := Style{Bold: true}
	color := 1
	boldRed.FGBasic = &color
	got := Apply(boldRed, "Hello", true)
	want := "\x1b[1;31mHello\x1b[0m"
	if got != want {
		t.Fatalf("Apply produced %q, want %q", got, want)
	}

	if got := Apply(Style{}, "Hello", true); got != "Hello" {
		t.Fatalf("empty style should return original text, got %q", got)
	}
	if got := Apply(boldRed, "Hello", false); got != "Hello" {
		t.Fatalf("disabled Apply should return original text, got %q", got)
	}
}

func TestApplyDecorationsAndBackground(t *testing.T) {
	fg := [3]uint8{1, 2, 3}
	bg := 44
	s := Style{Italic: true, Strikethrough: true, FGTrue: &fg, BG256: &bg}
	want := "\x1b[3;9;38;2;1;2;3;48;5;44mx\x1b[0m"
	if got := Apply(s, "x", true); got != want {
		t.Fatalf("Apply produced %q, want %q", got, want)
	}
	basic := 2
	if got := Apply(Style{BGBasic: &basic}, "x", true); got != "\x1b[42mx\x1b[0m" {
		t.Fatalf("basic background produced %q", got)
	}
	if !(Style{}).IsZero() || s.IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}
