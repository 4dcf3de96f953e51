package output

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/phyten/tagmark/internal/model"
)

type Field struct {
	Key    string
	Header string
}

type FieldSelection struct {
	Fields []Field
}

const DefaultFields = "tag,location,lang,text"

var fieldHeaders = map[string]string{
	"tag":      "TAG",
	"location": "LOCATION",
	"lang":     "LANG",
	"text":     "TEXT",
	"file":     "FILE",
	"line":     "LINE",
	"column":   "COLUMN",
	"col":      "COLUMN",
	"kind":     "KIND",
}

// ResolveFields parses a comma separated field list. An empty list selects
// DefaultFields.
func ResolveFields(raw string) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultFields
	}
	parts := strings.Split(raw, ",")
	sel := FieldSelection{Fields: make([]Field, 0, len(parts))}
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, errors.New("invalid fields: empty entry")
		}
		key := strings.ToLower(name)
		header, ok := fieldHeaders[key]
		if !ok {
			return FieldSelection{}, errors.Errorf("unknown field: %s", name)
		}
		if key == "col" {
			key = "column"
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: header})
	}
	return sel, nil
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(a model.Annotation, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = FieldValue(a, f.Key)
	}
	return out
}

func FieldValue(a model.Annotation, key string) string {
	switch key {
	case "tag":
		return a.Tag
	case "location":
		return a.File + ":" + strconv.Itoa(a.Line) + ":" + strconv.Itoa(a.Column)
	case "lang":
		return a.Lang
	case "text":
		return a.Text
	case "file":
		return a.File
	case "line":
		return strconv.Itoa(a.Line)
	case "column":
		return strconv.Itoa(a.Column)
	case "kind":
		return string(a.Kind)
	}
	return ""
}
