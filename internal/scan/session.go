package scan

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/phyten/tagmark/internal/buffer"
	"github.com/phyten/tagmark/internal/grammar"
	"github.com/phyten/tagmark/internal/render"
	"github.com/phyten/tagmark/internal/tags"
)

// Session is the scan state of one buffer: the active grammar, its compiled
// matchers and the registry whose buckets the passes fill. A session must
// not run two passes at once; give each goroutine its own session over a
// registry snapshot.
type Session struct {
	resolver *grammar.Resolver
	reg      *tags.Registry

	lang     string
	gen      uint64
	grammar  grammar.Grammar
	matchers *grammar.Matchers
}

// NewSession returns a session with no active language.
func NewSession(resolver *grammar.Resolver, reg *tags.Registry) *Session {
	return &Session{
		resolver: resolver,
		reg:      reg,
		grammar:  grammar.Unsupported(""),
		matchers: &grammar.Matchers{},
	}
}

// SetLanguage switches the active language. Matchers come from the
// resolver cache, so switching back to a visited language does not
// recompile.
func (s *Session) SetLanguage(lang string) error {
	gen := s.resolver.Generation()
	g := s.resolver.Resolve(lang)
	m, err := s.resolver.Matchers(g)
	if err != nil {
		return err
	}
	s.lang, s.gen, s.grammar, s.matchers = lang, gen, g, m
	return nil
}

// syncTags follows a tag set replaced on the resolver. The session keeps
// its own buckets, so it adopts a snapshot of the new registry.
func (s *Session) syncTags() {
	reg, ok := s.resolver.Tags().(*tags.Registry)
	if !ok || reg == nil || reg == s.reg {
		return
	}
	if s.reg == nil || reg.Fingerprint() != s.reg.Fingerprint() {
		s.reg = reg.Snapshot()
	}
}

func (s *Session) Language() string         { return s.lang }
func (s *Session) Grammar() grammar.Grammar { return s.grammar }
func (s *Session) Registry() *tags.Registry { return s.reg }

// Supported reports whether the active language is scanned at all.
func (s *Session) Supported() bool {
	return s.grammar.Supported && !s.matchers.Empty()
}

// Update rescans doc and hands the result to rd. Buckets are empty again
// when Update returns. If doc names a language other than the active one,
// the session switches first. A change of resolver options or tags since
// the last pass forces a re-resolve.
func (s *Session) Update(ctx context.Context, doc buffer.Document, rd render.Renderer) (int, error) {
	if s.resolver.Generation() != s.gen {
		s.syncTags()
		s.matchers = nil
	}
	if lang := doc.Language(); lang != s.lang || s.matchers == nil {
		if err := s.SetLanguage(lang); err != nil {
			return 0, err
		}
	}
	if rd == nil {
		rd = render.Discard
	}
	// stale ranges from an aborted pass must not reach the renderer
	s.reg.Reset()
	if !s.Supported() {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	began := time.Now()
	n := Scan(doc.Text(), s.grammar, s.matchers, s.reg)
	s.reg.Flush(doc, rd)
	zerolog.Ctx(ctx).Debug().
		Str("path", doc.Path()).
		Str("lang", s.lang).
		Int("ranges", n).
		Dur("took", time.Since(began)).
		Msg("scan pass")
	return n, nil
}
