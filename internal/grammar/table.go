package grammar

import "sort"

// template is the static comment syntax of one language.
type template struct {
	line            []string
	blockStart      string
	blockEnd        string
	docStyleCapable bool
	ignoreFirstLine bool
	plainText       bool
}

var (
	tmplCStyle     = template{line: []string{"//"}, blockStart: "/*", blockEnd: "*/", docStyleCapable: true}
	tmplStata      = template{line: []string{"//", "*"}, blockStart: "/*", blockEnd: "*/", docStyleCapable: true}
	tmplCSS        = template{line: []string{"/*"}, blockStart: "/*", blockEnd: "*/", docStyleCapable: true}
	tmplTerraform  = template{line: []string{"#"}, blockStart: "/*", blockEnd: "*/", docStyleCapable: true}
	tmplAsciiDoc   = template{line: []string{"//"}, blockStart: "////", blockEnd: "////"}
	tmplHash       = template{line: []string{"#"}}
	tmplTcl        = template{line: []string{"#"}, ignoreFirstLine: true}
	tmplPython     = template{line: []string{"#"}, blockStart: `"""`, blockEnd: `"""`, ignoreFirstLine: true}
	tmplPowershell = template{line: []string{"#"}, blockStart: "<#", blockEnd: "#>"}
	tmplNim        = template{line: []string{"#"}, blockStart: "#[", blockEnd: "]#"}
	tmplTwig       = template{line: []string{"{#"}, blockStart: "{#", blockEnd: "#}"}
	tmplMarkup     = template{line: []string{"<!--"}, blockStart: "<!--", blockEnd: "-->"}
	tmplCFML       = template{line: []string{"<!---"}, blockStart: "<!---", blockEnd: "--->"}
	tmplDashDash   = template{line: []string{"--"}}
	tmplLua        = template{line: []string{"--"}, blockStart: "--[[", blockEnd: "]]"}
	tmplHaskell    = template{line: []string{"--"}, blockStart: "{-", blockEnd: "-}"}
	tmplQuote      = template{line: []string{"'"}}
	tmplLisp       = template{line: []string{";"}}
	tmplPercent    = template{line: []string{"%"}}
	tmplFortran    = template{line: []string{"c"}}
	tmplCobol      = template{line: []string{"*>"}}
	tmplGenstat    = template{line: []string{`\`}, blockStart: `"`, blockEnd: `"`}
	tmplPlainText  = template{plainText: true}
)

var languageTemplates = map[string]template{
	"asciidoc": tmplAsciiDoc,

	"al":              tmplCStyle,
	"apex":            tmplCStyle,
	"c":               tmplCStyle,
	"cpp":             tmplCStyle,
	"csharp":          tmplCStyle,
	"dart":            tmplCStyle,
	"flax":            tmplCStyle,
	"fsharp":          tmplCStyle,
	"go":              tmplCStyle,
	"groovy":          tmplCStyle,
	"haxe":            tmplCStyle,
	"java":            tmplCStyle,
	"javascript":      tmplCStyle,
	"javascriptreact": tmplCStyle,
	"jsonc":           tmplCStyle,
	"kotlin":          tmplCStyle,
	"less":            tmplCStyle,
	"objective-c":     tmplCStyle,
	"objective-cpp":   tmplCStyle,
	"objectpascal":    tmplCStyle,
	"pascal":          tmplCStyle,
	"php":             tmplCStyle,
	"rust":            tmplCStyle,
	"scala":           tmplCStyle,
	"sass":            tmplCStyle,
	"scss":            tmplCStyle,
	"shaderlab":       tmplCStyle,
	"stylus":          tmplCStyle,
	"swift":           tmplCStyle,
	"typescript":      tmplCStyle,
	"typescriptreact": tmplCStyle,
	"verilog":         tmplCStyle,
	"vue":             tmplCStyle,

	"stata":     tmplStata,
	"css":       tmplCSS,
	"terraform": tmplTerraform,

	// SAS shares the CSS grammar: "/*" is its line delimiter.
	"SAS": tmplCSS,

	"coffeescript": tmplHash,
	"dockerfile":   tmplHash,
	"gdscript":     tmplHash,
	"graphql":      tmplHash,
	"julia":        tmplHash,
	"makefile":     tmplHash,
	"perl":         tmplHash,
	"perl6":        tmplHash,
	"puppet":       tmplHash,
	"r":            tmplHash,
	"ruby":         tmplHash,
	"shellscript":  tmplHash,
	"yaml":         tmplHash,

	"tcl":        tmplTcl,
	"elixir":     tmplPython,
	"python":     tmplPython,
	"powershell": tmplPowershell,
	"nim":        tmplNim,
	"twig":       tmplTwig,

	"html":     tmplMarkup,
	"markdown": tmplMarkup,
	"svg":      tmplMarkup,
	"xml":      tmplMarkup,
	"cfml":     tmplCFML,

	"ada":      tmplDashDash,
	"hive-sql": tmplDashDash,
	"pig":      tmplDashDash,
	"plsql":    tmplDashDash,
	"sql":      tmplDashDash,
	"lua":      tmplLua,
	"elm":      tmplHaskell,
	"haskell":  tmplHaskell,

	"brightscript": tmplQuote,
	"diagram":      tmplQuote,
	"vb":           tmplQuote,

	"clojure": tmplLisp,
	"lisp":    tmplLisp,
	"racket":  tmplLisp,

	"bibtex": tmplPercent,
	"erlang": tmplPercent,
	"latex":  tmplPercent,
	"matlab": tmplPercent,

	"fortran-modern": tmplFortran,
	"COBOL":          tmplCobol,
	"genstat":        tmplGenstat,

	"plaintext": tmplPlainText,
}

// Languages lists every language id with a known grammar.
func Languages() []string {
	out := make([]string, 0, len(languageTemplates))
	for id := range languageTemplates {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Known reports whether lang has an entry in the grammar table.
func Known(lang string) bool {
	_, ok := languageTemplates[lang]
	return ok
}
