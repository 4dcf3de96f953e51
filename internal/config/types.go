package config

import (
	"runtime"

	"github.com/phyten/tagmark/internal/grammar"
	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/tags"
)

const maxJobs = 64

// TagConfig is one configured tag: its identity strings and the style
// applied to matches.
type TagConfig struct {
	Tags  []string
	Style model.Style
}

// CoreConfig holds the keys that shape grammars and the tag registry.
type CoreConfig struct {
	HighlightPlainText *bool
	SingleLineComments *bool
	MultilineComments  *bool
	DocStyleLanguages  *[]string
	Tags               *[]TagConfig
}

type ScanConfig struct {
	Include      *[]string
	Exclude      *[]string
	Langs        *[]string
	Jobs         *int
	Output       *string
	Color        *string
	MaxFileBytes *int
	Fields       *string
	LineNumbers  *bool
}

// Config is one configuration layer. Nil fields leave lower layers alone.
type Config struct {
	Core     CoreConfig
	Scan     ScanConfig
	LogLevel *string
}

type ScanSettings struct {
	Include      []string
	Exclude      []string
	Langs        []string
	Jobs         int
	Output       string
	Color        string
	MaxFileBytes int
	Fields       string
	LineNumbers  bool
}

// Settings is the fully merged configuration.
type Settings struct {
	HighlightPlainText bool
	SingleLineComments bool
	MultilineComments  bool
	DocStyleLanguages  []string
	Tags               []TagConfig
	Scan               ScanSettings
	LogLevel           string
}

func DefaultSettings() Settings {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	defaults := tags.DefaultSpecs()
	tagCfgs := make([]TagConfig, len(defaults))
	for i, spec := range defaults {
		tagCfgs[i] = TagConfig{Tags: cloneStrings(spec.Tags), Style: spec.Style}
	}
	return Settings{
		SingleLineComments: true,
		MultilineComments:  true,
		Tags:               tagCfgs,
		Scan: ScanSettings{
			Jobs:         jobs,
			Output:       "table",
			Color:        "auto",
			MaxFileBytes: 1 << 20,
		},
		LogLevel: "warn",
	}
}

// GrammarOptions returns the resolver flags.
func (s Settings) GrammarOptions() grammar.Options {
	return grammar.Options{
		HighlightPlainText: s.HighlightPlainText,
		SingleLineComments: s.SingleLineComments,
		MultilineComments:  s.MultilineComments,
		DocStyleLanguages:  cloneStrings(s.DocStyleLanguages),
	}
}

// TagSpecs returns the registry input in configuration order.
func (s Settings) TagSpecs() []tags.Spec {
	out := make([]tags.Spec, len(s.Tags))
	for i, t := range s.Tags {
		out[i] = tags.Spec{Tags: cloneStrings(t.Tags), Style: t.Style}
	}
	return out
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneTags(in []TagConfig) []TagConfig {
	if in == nil {
		return nil
	}
	out := make([]TagConfig, len(in))
	for i, t := range in {
		out[i] = TagConfig{Tags: cloneStrings(t.Tags), Style: t.Style}
		if t.Style.Extra != nil {
			extra := make(map[string]string, len(t.Style.Extra))
			for k, v := range t.Style.Extra {
				extra[k] = v
			}
			out[i].Style.Extra = extra
		}
	}
	return out
}
