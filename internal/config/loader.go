package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	toml "github.com/pelletier/go-toml/v2"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

var coreKeyMap = map[string]string{
	"highlight_plain_text": "highlight_plain_text",
	"plain_text":           "highlight_plain_text",
	"single_line_comments": "single_line_comments",
	"multiline_comments":   "multiline_comments",
	"multi_line_comments":  "multiline_comments",
	"use_jsdoc_style":      "use_jsdoc_style",
	"use_js_doc_style":     "use_jsdoc_style",
	"doc_style_languages":  "use_jsdoc_style",
	"tags":                 "tags",
	"log_level":            "log_level",
}

var scanKeyMap = map[string]string{
	"include":        "include",
	"includes":       "include",
	"exclude":        "exclude",
	"excludes":       "exclude",
	"langs":          "langs",
	"languages":      "langs",
	"jobs":           "jobs",
	"output":         "output",
	"color":          "color",
	"max_file_bytes": "max_file_bytes",
	"max_bytes":      "max_file_bytes",
	"fields":         "fields",
	"line_numbers":   "line_numbers",
}

// Style keys understood on a tag entry. Other keys are kept in Style.Extra
// under their original spelling.
var tagKeyMap = map[string]string{
	"tag":              "tag",
	"tags":             "tag",
	"color":            "color",
	"background_color": "background_color",
	"font_weight":      "font_weight",
	"font_style":       "font_style",
	"text_decoration":  "text_decoration",
	"bold":             "bold",
	"italic":           "italic",
	"underline":        "underline",
	"strikethrough":    "strikethrough",
}

const settingsPrefix = "better_comments"

func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WithStack(err)
	}
	return Parse(data, filepath.Ext(path), path)
}

// Parse decodes data in the format named by ext (".yaml", ".toml", ...).
// name is only used in error messages and HCL diagnostics.
func Parse(data []byte, ext, name string) (Config, error) {
	var cfg Config
	var raw map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, errors.Errorf("parse %s: %w", name, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, errors.Errorf("parse %s: %w", name, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, errors.Errorf("parse %s: %w", name, decodeErr)
		}
	case ".hcl":
		return parseHCL(data, name)
	default:
		return cfg, errors.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, errors.Errorf("%s: %w", name, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	core := make(map[string]any)
	scan := make(map[string]any)

	flat := make(map[string]any, len(raw))
	for key, value := range raw {
		norm := normalizeKey(key)
		if norm == settingsPrefix {
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, errors.Errorf("%s: %w", key, err)
			}
			for k, v := range sub {
				flat[normalizeKey(k)] = v
			}
			continue
		}
		flat[strings.TrimPrefix(norm, settingsPrefix+".")] = value
	}

	for norm, value := range flat {
		if norm == "scan" {
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, errors.Errorf("scan: %w", err)
			}
			if err := fillSection(scan, sub, scanKeyMap, "scan"); err != nil {
				return cfg, err
			}
			continue
		}
		if canonical, ok := coreKeyMap[norm]; ok {
			core[canonical] = value
			continue
		}
		if canonical, ok := scanKeyMap[norm]; ok {
			scan[canonical] = value
			continue
		}
		return cfg, errors.Errorf("unknown config key: %s", norm)
	}

	if err := assignCore(core, &cfg); err != nil {
		return cfg, err
	}
	if err := assignScan(scan, &cfg.Scan); err != nil {
		return cfg, errors.Errorf("scan: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return errors.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignCore(section map[string]any, dst *Config) error {
	for key, value := range section {
		switch key {
		case "highlight_plain_text":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Core.HighlightPlainText = &b
		case "single_line_comments":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Core.SingleLineComments = &b
		case "multiline_comments":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Core.MultilineComments = &b
		case "use_jsdoc_style":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Core.DocStyleLanguages = &list
		case "tags":
			list, err := decodeTags(value)
			if err != nil {
				return err
			}
			dst.Core.Tags = &list
		case "log_level":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.LogLevel = &trimmed
		default:
			return errors.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignScan(section map[string]any, dst *ScanConfig) error {
	for key, value := range section {
		switch key {
		case "include", "exclude", "langs":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			switch key {
			case "include":
				dst.Include = &list
			case "exclude":
				dst.Exclude = &list
			default:
				dst.Langs = &list
			}
		case "jobs":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Jobs = &n
		case "max_file_bytes":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxFileBytes = &n
		case "output", "color", "fields":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			switch key {
			case "output":
				dst.Output = &trimmed
			case "color":
				dst.Color = &trimmed
			default:
				dst.Fields = &trimmed
			}
		case "line_numbers":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.LineNumbers = &b
		default:
			return errors.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

// decodeTags reads the tag list. An entry whose identity is missing or of
// the wrong type is kept with no identities so that Validate can report it;
// it never matches anything.
func decodeTags(value any) ([]TagConfig, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, errors.Errorf("expected list for tags, got %T", value)
	}
	out := make([]TagConfig, 0, len(items))
	for i, item := range items {
		entry, err := toStringKeyMap(item)
		if err != nil {
			return nil, errors.Errorf("tags[%d]: %w", i, err)
		}
		tc, err := decodeTag(entry)
		if err != nil {
			return nil, errors.Errorf("tags[%d]: %w", i, err)
		}
		out = append(out, tc)
	}
	return out, nil
}

func decodeTag(entry map[string]any) (TagConfig, error) {
	var tc TagConfig
	for key, value := range entry {
		canonical, ok := tagKeyMap[normalizeKey(key)]
		if !ok {
			if tc.Style.Extra == nil {
				tc.Style.Extra = make(map[string]string)
			}
			tc.Style.Extra[strings.TrimSpace(key)] = scalarString(value)
			continue
		}
		switch canonical {
		case "tag":
			tc.Tags = identityList(value)
		case "bold", "italic", "underline", "strikethrough":
			b, err := expectBool(value, key)
			if err != nil {
				return tc, err
			}
			switch canonical {
			case "bold":
				tc.Style.Bold = b
			case "italic":
				tc.Style.Italic = b
			case "underline":
				tc.Style.Underline = b
			default:
				tc.Style.Strikethrough = b
			}
		default:
			str := strings.TrimSpace(scalarString(value))
			switch canonical {
			case "color":
				tc.Style.Color = str
			case "background_color":
				tc.Style.BackgroundColor = str
			case "font_weight":
				tc.Style.FontWeight = str
			case "font_style":
				tc.Style.FontStyle = str
			case "text_decoration":
				tc.Style.TextDecoration = str
			}
		}
	}
	return tc, nil
}

// identityList accepts a string or a list of strings. Identities are not
// trimmed: " " is a legal tag.
func identityList(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return cloneStrings(v)
	}
	return nil
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", errors.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", errors.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return ParseBool(v, field)
	default:
		return false, errors.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, errors.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case string:
		return parseInt(v, field)
	default:
		return 0, errors.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		return SplitMulti([]string{v}), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, errors.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, errors.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, errors.Errorf("expected map, got %T", v)
	}
}

// normalizeKey lower-cases key into snake case: "backgroundColor",
// "background-color" and "useJSDocStyle" become "background_color",
// "background_color" and "use_js_doc_style".
func normalizeKey(key string) string {
	runes := []rune(strings.TrimSpace(key))
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.ReplaceAll(b.String(), "-", "_")
}
