package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CSI and OSC sequences.
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns the terminal cell width of s, ignoring escapes.
func VisibleWidth(s string) int {
	width := 0
	state := -1
	rest := StripANSI(s)
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		width += runewidth.StringWidth(cluster)
	}
	return width
}

// TruncateByWidth cuts s to at most w cells on a grapheme boundary. When s
// is cut and the ellipsis fits, it replaces the tail.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if w <= 0 || s == "" {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	budget := w
	ellW := runewidth.StringWidth(ellipsis)
	if ellW <= w {
		budget = w - ellW
	} else {
		ellipsis = ""
	}

	var b strings.Builder
	used := 0
	state := -1
	rest := StripANSI(s)
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		cw := runewidth.StringWidth(cluster)
		if used+cw > budget {
			break
		}
		b.WriteString(cluster)
		used += cw
	}
	return b.String() + ellipsis
}

// Cell flattens s onto one line for tabular output: line breaks and tabs
// become single spaces and surrounding blanks are trimmed.
func Cell(s string) string {
	if !strings.ContainsAny(s, "\r\n\t") {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(s), " ")
}

// PadRight pads s on the right so that its visible width is w.
func PadRight(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// PadLeft pads s on the left so that its visible width is w.
func PadLeft(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
