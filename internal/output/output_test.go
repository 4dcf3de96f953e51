package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyten/tagmark/internal/model"
)

var sampleItems = []model.Annotation{
	{
		File:   "internal/app/main.go",
		Lang:   "go",
		Tag:    "todo",
		Kind:   model.MatchKindLine,
		Line:   42,
		Column: 4,
		Text:   `TODO refactor parser, handle "quotes"`,
		Range:  model.Range{Start: 310, End: 347, Kind: model.MatchKindLine},
	},
	{
		File:   "pkg/util/helpers.py",
		Lang:   "python",
		Tag:    "!",
		Kind:   model.MatchKindLine,
		Line:   7,
		Column: 3,
		Text:   "! escape pipes | for markdown",
		Range:  model.Range{Start: 52, End: 81, Kind: model.MatchKindLine},
	},
}

func TestResolveFields(t *testing.T) {
	sel, err := ResolveFields("")
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	if got := strings.Join(Headers(sel.Fields), ","); got != "TAG,LOCATION,LANG,TEXT" {
		t.Fatalf("unexpected default headers: %s", got)
	}

	sel, err = ResolveFields("File, line ,col")
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	if got := RowValues(sampleItems[0], sel.Fields); strings.Join(got, "|") != "internal/app/main.go|42|4" {
		t.Fatalf("unexpected row: %v", got)
	}

	if _, err := ResolveFields("tag,,text"); err == nil {
		t.Fatal("expected error for empty entry")
	}
	if _, err := ResolveFields("author"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestWriteCSV(t *testing.T) {
	sel, err := ResolveFields("tag,location,lang,kind,text")
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleItems, sel); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	assertGolden(t, "want-csv.csv", buf.String())
	if !strings.Contains(buf.String(), "\r\n") {
		t.Fatal("CSV output should use CRLF line endings")
	}
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, sampleItems); err != nil {
		t.Fatalf("WriteNDJSON failed: %v", err)
	}
	output := buf.String()
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != len(sampleItems) {
		t.Fatalf("expected %d lines, got %d", len(sampleItems), len(lines))
	}
	for i, line := range lines {
		var item model.Annotation
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			t.Fatalf("failed to decode line %d: %v", i, err)
		}
		if item != sampleItems[i] {
			t.Fatalf("line %d did not round trip: %+v", i, item)
		}
	}
	assertGolden(t, "want-ndjson.ndjson", output)
}

func TestWriteJSONKeepsHTMLCharacters(t *testing.T) {
	var buf bytes.Buffer
	doc := map[string]any{"items": []model.Annotation{{Tag: "todo", Text: "TODO <b>"}}}
	if err := WriteJSON(&buf, doc); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if strings.Contains(buf.String(), "\\u003c") {
		t.Fatal("HTML characters should not be escaped in JSON output")
	}
	if !json.Valid(buf.Bytes()) {
		t.Fatalf("invalid JSON: %s", buf.String())
	}
}

func TestWriteMarkdownTable(t *testing.T) {
	sel, err := ResolveFields("tag,location,text")
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteMarkdownTable(&buf, sampleItems, sel); err != nil {
		t.Fatalf("WriteMarkdownTable failed: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "escape pipes \\| for markdown") {
		t.Fatal("expected pipe characters to be escaped in markdown output")
	}
	assertGolden(t, "want-md.md", output)
}

func TestWriteTableAlignsAndTruncates(t *testing.T) {
	sel, err := ResolveFields("tag,text")
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleItems, sel, 10); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	want := "TAG   TEXT\n" +
		"todo  TODO refa…\n" +
		"!     ! escape …\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%s", diffStrings(want, buf.String()))
	}
}

func TestWriteDispatch(t *testing.T) {
	sel, _ := ResolveFields("")
	var buf bytes.Buffer
	if err := Write(&buf, "ndjson", sampleItems, sel, nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if strings.Count(buf.String(), "\n") != len(sampleItems) {
		t.Fatalf("expected ndjson output, got %q", buf.String())
	}
}

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v", name, err)
	}
	if diff := diffStrings(string(want), got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func diffStrings(want, got string) string {
	if want == got {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("want:\n")
	buf.WriteString(want)
	if !strings.HasSuffix(want, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("got:\n")
	buf.WriteString(got)
	return buf.String()
}
