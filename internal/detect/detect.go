// Package detect guesses the editor language identifier of a file from its
// name and, failing that, its shebang line.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

type Info struct {
	Name string
	// Source records how Name was found: "path", "shebang" or "".
	Source string
}

func FromPathAndContent(p string, data []byte) Info {
	name := detectByPath(p)
	if name != "" {
		if name == "objective-c" && strings.EqualFold(filepath.Ext(p), ".m") && looksLikeMatlab(data) {
			return Info{Name: "matlab", Source: "path"}
		}
		return Info{Name: name, Source: "path"}
	}
	if shebang := detectByShebang(data); shebang != "" {
		return Info{Name: shebang, Source: "shebang"}
	}
	return Info{}
}

func detectByPath(p string) string {
	lowerBase := strings.ToLower(filepath.Base(p))
	if lang, ok := basenameLanguages[lowerBase]; ok {
		return lang
	}
	ext := filepath.Ext(lowerBase)
	if ext == "" {
		return ""
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	// Dockerfile.dev, Makefile.linux
	stem := strings.TrimSuffix(lowerBase, ext)
	if lang, ok := basenameLanguages[stem]; ok {
		return lang
	}
	return ""
}

// detectByShebang resolves the interpreter named on a "#!" first line,
// looking through "env" and version suffixes such as python3.11.
func detectByShebang(data []byte) string {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	line := data[2:]
	if end := bytes.IndexByte(line, '\n'); end >= 0 {
		line = line[:end]
	}
	fields := strings.Fields(strings.ToLower(string(line)))
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" {
		interp = ""
		for _, f := range fields[1:] {
			if strings.HasPrefix(f, "-") || strings.Contains(f, "=") {
				continue
			}
			interp = filepath.Base(f)
			break
		}
	}
	interp = strings.TrimRight(interp, "0123456789.")
	return shebangLanguages[interp]
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	// grammar ids that are not all lower case
	switch n {
	case "sas":
		return "SAS"
	case "cobol":
		return "COBOL"
	}
	return n
}

// MatchesLang reports whether info is one of the allowed languages. An
// empty allow list accepts everything.
func MatchesLang(info Info, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	detected := NormalizeLangName(info.Name)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if NormalizeLangName(raw) == detected {
			return true
		}
	}
	return false
}

// CanonicalLangs normalizes and dedupes values, keeping first-seen order.
func CanonicalLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

func looksLikeMatlab(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	sawMatlabKeyword := false
	for _, line := range strings.Split(string(sample), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "@interface") || strings.HasPrefix(lower, "@implementation") || strings.HasPrefix(lower, "#import") {
			return false
		}
		if strings.HasPrefix(lower, "function") || strings.HasPrefix(lower, "classdef") {
			return true
		}
		if strings.HasPrefix(lower, "properties") || strings.HasPrefix(lower, "methods") {
			sawMatlabKeyword = true
		}
	}
	return sawMatlabKeyword
}
