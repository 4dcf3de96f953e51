// Package grammar maps language identifiers to comment syntax and compiles
// that syntax, together with the configured tags, into scan patterns.
package grammar

import (
	"sort"
	"sync"
)

// Options are the configuration flags that shape a grammar.
type Options struct {
	HighlightPlainText bool
	SingleLineComments bool
	MultilineComments  bool
	// DocStyleLanguages lists languages whose block comments are matched in
	// "/** ... */" form with a leading "*" per line.
	DocStyleLanguages []string
}

// DefaultOptions mirrors the stock configuration.
func DefaultOptions() Options {
	return Options{SingleLineComments: true, MultilineComments: true}
}

// Grammar is the resolved comment syntax of one language.
type Grammar struct {
	Language        string
	LineDelimiters  []string
	BlockStart      string
	BlockEnd        string
	DocStyle        bool
	IgnoreFirstLine bool
	PlainText       bool

	// SingleLine and Multiline report which scan passes are enabled.
	SingleLine bool
	Multiline  bool
	Supported  bool
}

// Unsupported is the grammar of languages that are never scanned.
func Unsupported(lang string) Grammar {
	return Grammar{Language: lang}
}

// TagSource provides the escaped identity strings to compile.
type TagSource interface {
	Identifiers() []string
	Fingerprint() string
}

// Resolver resolves grammars and caches compiled matchers per language.
// It is safe for concurrent use.
type Resolver struct {
	mu       sync.Mutex
	opts     Options
	docStyle map[string]struct{}
	tags     TagSource
	cache    map[string]*Matchers
	compiled int
	// gen changes whenever cached matchers are dropped.
	gen uint64
}

// NewResolver returns a resolver for opts and the given tag set.
func NewResolver(opts Options, tags TagSource) *Resolver {
	r := &Resolver{tags: tags}
	r.setOptions(opts)
	return r
}

// SetOptions replaces the configuration flags and drops cached matchers.
func (r *Resolver) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setOptions(opts)
}

func (r *Resolver) setOptions(opts Options) {
	r.opts = opts
	r.docStyle = make(map[string]struct{}, len(opts.DocStyleLanguages))
	for _, lang := range opts.DocStyleLanguages {
		r.docStyle[lang] = struct{}{}
	}
	r.cache = make(map[string]*Matchers)
	r.gen++
}

// SetTags replaces the tag set and drops cached matchers when it differs.
func (r *Resolver) SetTags(tags TagSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tags != nil && tags != nil && r.tags.Fingerprint() == tags.Fingerprint() {
		r.tags = tags
		return
	}
	r.tags = tags
	r.cache = make(map[string]*Matchers)
	r.gen++
}

// Tags returns the current tag set.
func (r *Resolver) Tags() TagSource {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tags
}

// Generation identifies the current options and tag set. Holders of a
// resolved grammar or matchers re-resolve when it changes.
func (r *Resolver) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Options returns the current configuration flags.
func (r *Resolver) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// Resolve returns the grammar for lang. Unknown ids are unsupported.
func (r *Resolver) Resolve(lang string) Grammar {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(lang)
}

func (r *Resolver) resolve(lang string) Grammar {
	tmpl, ok := languageTemplates[lang]
	if !ok {
		return Unsupported(lang)
	}
	if tmpl.plainText {
		enabled := r.opts.HighlightPlainText && r.opts.SingleLineComments
		return Grammar{
			Language:   lang,
			PlainText:  true,
			SingleLine: enabled,
			Supported:  enabled,
		}
	}
	_, doc := r.docStyle[lang]
	g := Grammar{
		Language:        lang,
		LineDelimiters:  append([]string(nil), tmpl.line...),
		BlockStart:      tmpl.blockStart,
		BlockEnd:        tmpl.blockEnd,
		DocStyle:        tmpl.docStyleCapable && doc,
		IgnoreFirstLine: tmpl.ignoreFirstLine,
		SingleLine:      r.opts.SingleLineComments && len(tmpl.line) > 0,
		Multiline:       r.opts.MultilineComments && tmpl.blockStart != "",
		Supported:       true,
	}
	return g
}

// Matchers returns the compiled patterns for g, compiling at most once per
// language until the options or tags change.
func (r *Resolver) Matchers(g Grammar) (*Matchers, error) {
	if !g.Supported {
		return &Matchers{}, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.cache[g.Language]; ok {
		return m, nil
	}
	var ids []string
	if r.tags != nil {
		ids = r.tags.Identifiers()
	}
	m, err := Compile(g, ids)
	if err != nil {
		return nil, err
	}
	r.compiled++
	r.cache[g.Language] = m
	return m, nil
}

// Preflight compiles the matchers of every known language and returns the
// first failure. Callers treat an error as a broken grammar table.
func (r *Resolver) Preflight() error {
	langs := make([]string, 0, len(languageTemplates))
	for lang := range languageTemplates {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if _, err := r.Matchers(r.Resolve(lang)); err != nil {
			return err
		}
	}
	return nil
}
