package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/phyten/tagmark/internal/detect"
	"github.com/phyten/tagmark/internal/grammar"
	"github.com/phyten/tagmark/internal/termcolor"
)

var outputAliases = map[string]string{
	"table":    "table",
	"json":     "json",
	"ndjson":   "ndjson",
	"jsonl":    "ndjson",
	"csv":      "csv",
	"markdown": "markdown",
	"md":       "markdown",
}

func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if canon, ok := outputAliases[v]; ok {
		return canon, nil
	}
	return "", errors.Errorf("invalid output: %s", value)
}

// Validate normalizes s and rejects values no command can run with.
// Problems that only weaken matching (an unusable tag entry, a doc-style
// language without a grammar) are returned as warnings.
func Validate(s Settings) (Settings, []string, error) {
	var warnings []string

	output, err := NormalizeOutput(s.Scan.Output)
	if err != nil {
		return s, nil, err
	}
	s.Scan.Output = output

	mode, err := termcolor.ParseMode(s.Scan.Color)
	if err != nil {
		return s, nil, err
	}
	s.Scan.Color = mode.String()

	if s.Scan.Jobs == 0 {
		s.Scan.Jobs = DefaultSettings().Scan.Jobs
	}
	if s.Scan.Jobs < 1 || s.Scan.Jobs > maxJobs {
		return s, nil, errors.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	if s.Scan.MaxFileBytes < 0 {
		return s, nil, errors.New("max_file_bytes must be >= 0")
	}

	level := strings.ToLower(strings.TrimSpace(s.LogLevel))
	if level == "" {
		level = zerolog.WarnLevel.String()
	}
	if _, err := zerolog.ParseLevel(level); err != nil {
		return s, nil, errors.Errorf("invalid log_level: %s", s.LogLevel)
	}
	s.LogLevel = level

	s.Scan.Langs = detect.CanonicalLangs(s.Scan.Langs)
	s.DocStyleLanguages = detect.CanonicalLangs(s.DocStyleLanguages)
	for _, lang := range s.DocStyleLanguages {
		if !grammar.Known(lang) {
			warnings = append(warnings, fmt.Sprintf("use_jsdoc_style: unknown language %q", lang))
		}
	}

	for i, t := range s.Tags {
		usable := false
		for _, id := range t.Tags {
			if id != "" {
				usable = true
				break
			}
		}
		if !usable {
			warnings = append(warnings, fmt.Sprintf("tags[%d]: no tag identity, entry never matches", i))
		}
	}
	return s, warnings, nil
}
