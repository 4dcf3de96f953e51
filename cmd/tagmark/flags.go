package main

import (
	"github.com/spf13/cobra"

	"github.com/phyten/tagmark/internal/config"
)

// layerFlags holds the flags that override configuration keys. Only flags
// set on the command line form the flag layer.
type layerFlags struct {
	plainText  bool
	singleLine bool
	multiline  bool
	docStyle   []string

	include      []string
	exclude      []string
	langs        []string
	jobs         int
	output       string
	color        string
	maxFileBytes int
	fields       string
	lineNumbers  bool
}

func (f *layerFlags) registerCore(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.plainText, "plain-text", false, "match tags at line starts of plaintext files")
	fs.BoolVar(&f.singleLine, "single-line", true, "match tags in line comments")
	fs.BoolVar(&f.multiline, "multiline", true, "match tags in block comments")
	fs.StringSliceVar(&f.docStyle, "jsdoc-langs", nil, "languages whose block comments use /** ... */ style")
}

func (f *layerFlags) registerFilters(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVar(&f.include, "include", nil, "glob of files to scan, relative to each root (repeatable)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "glob of files or directories to skip (repeatable)")
	fs.StringSliceVar(&f.langs, "langs", nil, "only scan these languages (e.g. go,python)")
	fs.IntVar(&f.jobs, "jobs", 0, "parallel workers (1-64, 0 = number of CPUs)")
	fs.IntVar(&f.maxFileBytes, "max-file-bytes", 0, "skip files larger than this (0 = no limit)")
}

func (f *layerFlags) registerOutput(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "table|json|ndjson|csv|markdown")
	fs.StringVar(&f.fields, "fields", "", "columns: tag,location,lang,text,file,line,column,kind")
}

func (f *layerFlags) registerColor(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.color, "color", "", "auto|always|never")
}

func (f *layerFlags) config(cmd *cobra.Command) config.Config {
	fs := cmd.Flags()
	changed := func(name string) bool {
		flag := fs.Lookup(name)
		return flag != nil && flag.Changed
	}
	var cfg config.Config
	if changed("plain-text") {
		cfg.Core.HighlightPlainText = &f.plainText
	}
	if changed("single-line") {
		cfg.Core.SingleLineComments = &f.singleLine
	}
	if changed("multiline") {
		cfg.Core.MultilineComments = &f.multiline
	}
	if changed("jsdoc-langs") {
		list := config.SplitMulti(f.docStyle)
		cfg.Core.DocStyleLanguages = &list
	}
	if changed("include") {
		list := config.SplitMulti(f.include)
		cfg.Scan.Include = &list
	}
	if changed("exclude") {
		list := config.SplitMulti(f.exclude)
		cfg.Scan.Exclude = &list
	}
	if changed("langs") {
		list := config.SplitMulti(f.langs)
		cfg.Scan.Langs = &list
	}
	if changed("jobs") {
		cfg.Scan.Jobs = &f.jobs
	}
	if changed("max-file-bytes") {
		cfg.Scan.MaxFileBytes = &f.maxFileBytes
	}
	if changed("output") {
		cfg.Scan.Output = &f.output
	}
	if changed("fields") {
		cfg.Scan.Fields = &f.fields
	}
	if changed("color") {
		cfg.Scan.Color = &f.color
	}
	if changed("line-numbers") {
		cfg.Scan.LineNumbers = &f.lineNumbers
	}
	return cfg
}
