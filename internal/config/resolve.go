package config

import "strings"

// Resolve returns the value of the last layer that sets the key, or def
// when none does.
func Resolve[T any](def T, layers ...*T) T {
	result := def
	for _, v := range layers {
		if v != nil {
			result = *v
		}
	}
	return result
}

// ResolveTrimmed is Resolve for free-form strings. A layer holding only
// blanks counts as unset.
func ResolveTrimmed(def string, layers ...*string) string {
	result := strings.TrimSpace(def)
	for _, v := range layers {
		if v == nil {
			continue
		}
		if trimmed := strings.TrimSpace(*v); trimmed != "" {
			result = trimmed
		}
	}
	return result
}

// ResolveStrings merges list keys. The result never aliases a layer; an
// explicitly empty list clears what lower layers set.
func ResolveStrings(def []string, layers ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range layers {
		if v == nil {
			continue
		}
		if len(*v) == 0 {
			result = []string{}
			continue
		}
		result = cloneStrings(*v)
	}
	return result
}
