package config

import (
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gitlab.com/tozd/go/errors"

	"github.com/phyten/tagmark/internal/model"
)

// hclFile is the HCL form of a config file:
//
//	multiline_comments = true
//	use_jsdoc_style    = ["typescript"]
//
//	scan {
//	  exclude = ["vendor/**"]
//	}
//
//	tag "TODO" {
//	  aliases = ["FIXME"]
//	  color   = "#FF8C00"
//	}
type hclFile struct {
	HighlightPlainText *bool     `hcl:"highlight_plain_text,optional"`
	SingleLineComments *bool     `hcl:"single_line_comments,optional"`
	MultilineComments  *bool     `hcl:"multiline_comments,optional"`
	UseJSDocStyle      *[]string `hcl:"use_jsdoc_style,optional"`
	LogLevel           *string   `hcl:"log_level,optional"`
	Scan               *hclScan  `hcl:"scan,block"`
	Tags               []hclTag  `hcl:"tag,block"`
}

type hclScan struct {
	Include      *[]string `hcl:"include,optional"`
	Exclude      *[]string `hcl:"exclude,optional"`
	Langs        *[]string `hcl:"langs,optional"`
	Jobs         *int      `hcl:"jobs,optional"`
	Output       *string   `hcl:"output,optional"`
	Color        *string   `hcl:"color,optional"`
	MaxFileBytes *int      `hcl:"max_file_bytes,optional"`
	Fields       *string   `hcl:"fields,optional"`
	LineNumbers  *bool     `hcl:"line_numbers,optional"`
}

type hclTag struct {
	Name            string            `hcl:"name,label"`
	Aliases         []string          `hcl:"aliases,optional"`
	Color           string            `hcl:"color,optional"`
	BackgroundColor string            `hcl:"background_color,optional"`
	FontWeight      string            `hcl:"font_weight,optional"`
	FontStyle       string            `hcl:"font_style,optional"`
	TextDecoration  string            `hcl:"text_decoration,optional"`
	Bold            bool              `hcl:"bold,optional"`
	Italic          bool              `hcl:"italic,optional"`
	Underline       bool              `hcl:"underline,optional"`
	Strikethrough   bool              `hcl:"strikethrough,optional"`
	Extra           map[string]string `hcl:"extra,optional"`
}

func parseHCL(data []byte, name string) (Config, error) {
	var cfg Config
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return cfg, errors.Errorf("parse %s: %w", name, diags)
	}
	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return cfg, errors.Errorf("decode %s: %w", name, diags)
	}

	cfg.Core.HighlightPlainText = raw.HighlightPlainText
	cfg.Core.SingleLineComments = raw.SingleLineComments
	cfg.Core.MultilineComments = raw.MultilineComments
	if raw.UseJSDocStyle != nil {
		list := normalizeList(*raw.UseJSDocStyle)
		cfg.Core.DocStyleLanguages = &list
	}
	if raw.LogLevel != nil {
		trimmed := strings.TrimSpace(*raw.LogLevel)
		cfg.LogLevel = &trimmed
	}
	if raw.Tags != nil {
		list := make([]TagConfig, 0, len(raw.Tags))
		for _, t := range raw.Tags {
			list = append(list, t.config())
		}
		cfg.Core.Tags = &list
	}
	if s := raw.Scan; s != nil {
		cfg.Scan = ScanConfig{
			Include:      normalizedListPtr(s.Include),
			Exclude:      normalizedListPtr(s.Exclude),
			Langs:        normalizedListPtr(s.Langs),
			Jobs:         s.Jobs,
			Output:       trimmedPtr(s.Output),
			Color:        trimmedPtr(s.Color),
			MaxFileBytes: s.MaxFileBytes,
			Fields:       trimmedPtr(s.Fields),
			LineNumbers:  s.LineNumbers,
		}
	}
	return cfg, nil
}

func (t hclTag) config() TagConfig {
	ids := append([]string{t.Name}, t.Aliases...)
	return TagConfig{
		Tags: ids,
		Style: model.Style{
			Color:           strings.TrimSpace(t.Color),
			BackgroundColor: strings.TrimSpace(t.BackgroundColor),
			FontWeight:      strings.TrimSpace(t.FontWeight),
			FontStyle:       strings.TrimSpace(t.FontStyle),
			TextDecoration:  strings.TrimSpace(t.TextDecoration),
			Bold:            t.Bold,
			Italic:          t.Italic,
			Underline:       t.Underline,
			Strikethrough:   t.Strikethrough,
			Extra:           t.Extra,
		},
	}
}

func normalizedListPtr(in *[]string) *[]string {
	if in == nil {
		return nil
	}
	list := normalizeList(*in)
	return &list
}

func trimmedPtr(in *string) *string {
	if in == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*in)
	return &trimmed
}
