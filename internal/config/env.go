package config

import (
	"math"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// FromEnv reads the TAGMARK_* variables into a layer. Tags cannot be set
// from the environment.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		*target = &list
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}

	setBool(&cfg.Core.HighlightPlainText, "TAGMARK_HIGHLIGHT_PLAIN_TEXT")
	setBool(&cfg.Core.SingleLineComments, "TAGMARK_SINGLE_LINE_COMMENTS")
	setBool(&cfg.Core.MultilineComments, "TAGMARK_MULTILINE_COMMENTS")
	setList(&cfg.Core.DocStyleLanguages, "TAGMARK_USE_JSDOC_STYLE")

	setList(&cfg.Scan.Include, "TAGMARK_INCLUDE")
	setList(&cfg.Scan.Exclude, "TAGMARK_EXCLUDE")
	setList(&cfg.Scan.Langs, "TAGMARK_LANGS")
	// Validate enforces the upper bound so every input path shares one message.
	setInt(&cfg.Scan.Jobs, "TAGMARK_JOBS", 0, math.MaxInt)
	setString(&cfg.Scan.Output, "TAGMARK_OUTPUT")
	setString(&cfg.Scan.Color, "TAGMARK_COLOR")
	setInt(&cfg.Scan.MaxFileBytes, "TAGMARK_MAX_FILE_BYTES", 0, math.MaxInt)
	setString(&cfg.Scan.Fields, "TAGMARK_FIELDS")
	setBool(&cfg.Scan.LineNumbers, "TAGMARK_LINE_NUMBERS")

	setString(&cfg.LogLevel, "TAGMARK_LOG_LEVEL")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
