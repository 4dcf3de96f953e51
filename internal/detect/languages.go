package detect

var basenameLanguages = map[string]string{
	"makefile":       "makefile",
	"gnumakefile":    "makefile",
	"justfile":       "makefile",
	"dockerfile":     "dockerfile",
	"containerfile":  "dockerfile",
	"gemfile":        "ruby",
	"rakefile":       "ruby",
	"podfile":        "ruby",
	"vagrantfile":    "ruby",
	"berksfile":      "ruby",
	"jenkinsfile":    "groovy",
	"cmakelists.txt": "plaintext",
	".bashrc":        "shellscript",
	".zshrc":         "shellscript",
	".profile":       "shellscript",
}

var extensionLanguages = map[string]string{
	".c":          "c",
	".h":          "c",
	".cc":         "cpp",
	".cpp":        "cpp",
	".cxx":        "cpp",
	".hh":         "cpp",
	".hpp":        "cpp",
	".hxx":        "cpp",
	".m":          "objective-c",
	".mm":         "objective-cpp",
	".cs":         "csharp",
	".go":         "go",
	".java":       "java",
	".kt":         "kotlin",
	".kts":        "kotlin",
	".scala":      "scala",
	".groovy":     "groovy",
	".gradle":     "groovy",
	".swift":      "swift",
	".rs":         "rust",
	".dart":       "dart",
	".hx":         "haxe",
	".al":         "al",
	".apex":       "apex",
	".cls":        "apex",
	".trigger":    "apex",
	".fs":         "fsharp",
	".fsx":        "fsharp",
	".js":         "javascript",
	".mjs":        "javascript",
	".cjs":        "javascript",
	".jsx":        "javascriptreact",
	".ts":         "typescript",
	".mts":        "typescript",
	".cts":        "typescript",
	".tsx":        "typescriptreact",
	".jsonc":      "jsonc",
	".php":        "php",
	".phtml":      "php",
	".pas":        "pascal",
	".pp":         "puppet",
	".dpr":        "objectpascal",
	".lpr":        "objectpascal",
	".v":          "verilog",
	".vh":         "verilog",
	".sv":         "verilog",
	".vue":        "vue",
	".shader":     "shaderlab",
	".css":        "css",
	".scss":       "scss",
	".sass":       "sass",
	".less":       "less",
	".styl":       "stylus",
	".sas":        "SAS",
	".do":         "stata",
	".ado":        "stata",
	".tf":         "terraform",
	".tfvars":     "terraform",
	".hcl":        "terraform",
	".adoc":       "asciidoc",
	".asciidoc":   "asciidoc",
	".coffee":     "coffeescript",
	".dockerfile": "dockerfile",
	".gd":         "gdscript",
	".graphql":    "graphql",
	".gql":        "graphql",
	".jl":         "julia",
	".mk":         "makefile",
	".pl":         "perl",
	".pm":         "perl",
	".p6":         "perl6",
	".raku":       "perl6",
	".r":          "r",
	".rb":         "ruby",
	".rake":       "ruby",
	".gemspec":    "ruby",
	".sh":         "shellscript",
	".bash":       "shellscript",
	".zsh":        "shellscript",
	".ksh":        "shellscript",
	".yaml":       "yaml",
	".yml":        "yaml",
	".tcl":        "tcl",
	".py":         "python",
	".pyw":        "python",
	".pyi":        "python",
	".ex":         "elixir",
	".exs":        "elixir",
	".ps1":        "powershell",
	".psm1":       "powershell",
	".psd1":       "powershell",
	".nim":        "nim",
	".twig":       "twig",
	".html":       "html",
	".htm":        "html",
	".xhtml":      "html",
	".md":         "markdown",
	".markdown":   "markdown",
	".svg":        "svg",
	".xml":        "xml",
	".xaml":       "xml",
	".plist":      "xml",
	".csproj":     "xml",
	".cfm":        "cfml",
	".cfc":        "cfml",
	".adb":        "ada",
	".ads":        "ada",
	".hql":        "hive-sql",
	".pig":        "pig",
	".pks":        "plsql",
	".pkb":        "plsql",
	".sql":        "sql",
	".lua":        "lua",
	".elm":        "elm",
	".hs":         "haskell",
	".lhs":        "haskell",
	".brs":        "brightscript",
	".puml":       "diagram",
	".vb":         "vb",
	".bas":        "vb",
	".clj":        "clojure",
	".cljs":       "clojure",
	".cljc":       "clojure",
	".lisp":       "lisp",
	".lsp":        "lisp",
	".el":         "lisp",
	".rkt":        "racket",
	".bib":        "bibtex",
	".erl":        "erlang",
	".hrl":        "erlang",
	".tex":        "latex",
	".sty":        "latex",
	".f90":        "fortran-modern",
	".f95":        "fortran-modern",
	".f03":        "fortran-modern",
	".cob":        "COBOL",
	".cbl":        "COBOL",
	".gen":        "genstat",
	".txt":        "plaintext",
	".text":       "plaintext",
}

var shebangLanguages = map[string]string{
	"python":  "python",
	"pypy":    "python",
	"node":    "javascript",
	"deno":    "typescript",
	"perl":    "perl",
	"raku":    "perl6",
	"ruby":    "ruby",
	"php":     "php",
	"sh":      "shellscript",
	"bash":    "shellscript",
	"dash":    "shellscript",
	"zsh":     "shellscript",
	"ksh":     "shellscript",
	"pwsh":    "powershell",
	"lua":     "lua",
	"groovy":  "groovy",
	"swift":   "swift",
	"rscript": "r",
	"julia":   "julia",
	"elixir":  "elixir",
	"escript": "erlang",
	"tclsh":   "tcl",
	"wish":    "tcl",
}

var langAliases = map[string]string{
	"c#":         "csharp",
	"cs":         "csharp",
	"c++":        "cpp",
	"cc":         "cpp",
	"hpp":        "cpp",
	"objc":       "objective-c",
	"js":         "javascript",
	"jsx":        "javascriptreact",
	"ts":         "typescript",
	"tsx":        "typescriptreact",
	"kt":         "kotlin",
	"rb":         "ruby",
	"py":         "python",
	"ps1":        "powershell",
	"pwsh":       "powershell",
	"bash":       "shellscript",
	"sh":         "shellscript",
	"shell":      "shellscript",
	"zsh":        "shellscript",
	"make":       "makefile",
	"mk":         "makefile",
	"tf":         "terraform",
	"yml":        "yaml",
	"md":         "markdown",
	"text":       "plaintext",
	"txt":        "plaintext",
	"plain":      "plaintext",
	"fortran":    "fortran-modern",
	"elisp":      "lisp",
	"golang":     "go",
	"emacs-lisp": "lisp",
	"tex":        "latex",
	"htm":        "html",
}
