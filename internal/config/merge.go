package config

import "strings"

// Merge applies layers over base in order; later layers win field by field.
// A layer that sets Tags replaces the whole tag list.
func Merge(base Settings, layers ...Config) Settings {
	out := base
	out.DocStyleLanguages = cloneStrings(base.DocStyleLanguages)
	out.Tags = cloneTags(base.Tags)
	for _, layer := range layers {
		out.HighlightPlainText = Resolve(out.HighlightPlainText, layer.Core.HighlightPlainText)
		out.SingleLineComments = Resolve(out.SingleLineComments, layer.Core.SingleLineComments)
		out.MultilineComments = Resolve(out.MultilineComments, layer.Core.MultilineComments)
		out.DocStyleLanguages = ResolveStrings(out.DocStyleLanguages, layer.Core.DocStyleLanguages)
		if layer.Core.Tags != nil {
			out.Tags = cloneTags(*layer.Core.Tags)
		}

		out.Scan.Include = ResolveStrings(out.Scan.Include, layer.Scan.Include)
		out.Scan.Exclude = ResolveStrings(out.Scan.Exclude, layer.Scan.Exclude)
		out.Scan.Langs = ResolveStrings(out.Scan.Langs, layer.Scan.Langs)
		out.Scan.Jobs = Resolve(out.Scan.Jobs, layer.Scan.Jobs)
		out.Scan.Output = ResolveTrimmed(out.Scan.Output, layer.Scan.Output)
		out.Scan.Color = ResolveTrimmed(out.Scan.Color, layer.Scan.Color)
		out.Scan.MaxFileBytes = Resolve(out.Scan.MaxFileBytes, layer.Scan.MaxFileBytes)
		out.Scan.Fields = ResolveTrimmed(out.Scan.Fields, layer.Scan.Fields)
		out.Scan.LineNumbers = Resolve(out.Scan.LineNumbers, layer.Scan.LineNumbers)

		out.LogLevel = ResolveTrimmed(out.LogLevel, layer.LogLevel)
	}
	if strings.TrimSpace(out.Scan.Output) == "" {
		out.Scan.Output = "table"
	}
	if strings.TrimSpace(out.Scan.Color) == "" {
		out.Scan.Color = "auto"
	}
	return out
}
