// Package workspace scans directory trees: it walks the roots, picks the
// files to scan, runs them through per-worker scan sessions and gathers the
// annotations.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/phyten/tagmark/internal/buffer"
	"github.com/phyten/tagmark/internal/detect"
	"github.com/phyten/tagmark/internal/grammar"
	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/progress"
	"github.com/phyten/tagmark/internal/render/collect"
	"github.com/phyten/tagmark/internal/scan"
	"github.com/phyten/tagmark/internal/tags"
)

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8000

var skippedDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
}

// Options controls one workspace scan.
type Options struct {
	Roots   []string
	Include []string
	Exclude []string
	// Langs limits the scan to these language ids; empty means all.
	Langs        []string
	Jobs         int
	MaxFileBytes int
	// ForceLanguage skips detection and scans every file as this language.
	ForceLanguage string
	Progress      progress.Observer
}

// FileError records a file that could not be walked, read or scanned.
type FileError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.File, e.Stage, e.Message)
}

// Result is the outcome of Run.
type Result struct {
	Items      []model.Annotation `json:"items"`
	Files      int                `json:"files"`
	Skipped    int                `json:"skipped"`
	Total      int                `json:"total"`
	ElapsedMS  int64              `json:"elapsed_ms"`
	Errors     []FileError        `json:"errors,omitempty"`
	ErrorCount int                `json:"error_count"`
}

// Err joins the per-file errors, or returns nil when there are none.
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, e := range r.Errors {
		merr = multierror.Append(merr, e)
	}
	return merr.ErrorOrNil()
}

// Scanner owns the tag registry and grammar cache shared by every run.
type Scanner struct {
	fs        afero.Fs
	reg       *tags.Registry
	resolver  *grammar.Resolver
	collector *collect.Renderer
}

// New builds the registry for specs and a resolver for opts. Handles are
// allocated once here; runs only fork from them.
func New(fs afero.Fs, specs []tags.Spec, opts grammar.Options) *Scanner {
	collector := collect.New()
	reg := tags.New(specs, collector)
	return &Scanner{
		fs:        fs,
		reg:       reg,
		resolver:  grammar.NewResolver(opts, reg),
		collector: collector,
	}
}

func (s *Scanner) Fs() afero.Fs                { return s.fs }
func (s *Scanner) Registry() *tags.Registry    { return s.reg }
func (s *Scanner) Resolver() *grammar.Resolver { return s.resolver }

// NewSession returns a session over a fresh registry snapshot and a
// collector fork, for callers that scan one buffer at a time.
func (s *Scanner) NewSession() (*scan.Session, *collect.Renderer) {
	return scan.NewSession(s.resolver, s.reg.Snapshot()), s.collector.Fork()
}

type candidate struct {
	path string
	size int64
}

// Run walks the roots and scans every selected file with opts.Jobs
// workers. Per-file failures are collected in the result; the returned
// error is reserved for cancellation and invalid options.
func (s *Scanner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	log := zerolog.Ctx(ctx)
	if err := validatePatterns(opts.Include, opts.Exclude); err != nil {
		return nil, err
	}
	if len(opts.Roots) == 0 {
		opts.Roots = []string{"."}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	observer := opts.Progress
	if observer == nil {
		observer = progress.NoopObserver{}
	}
	est := progress.NewEstimator(0, progress.Config{})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var errsMu sync.Mutex
	var errs []FileError
	addErr := func(path, stage string, err error) {
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = "unknown error"
		}
		errsMu.Lock()
		errs = append(errs, FileError{File: path, Stage: stage, Message: msg})
		errsMu.Unlock()
	}

	queue := make(chan candidate)
	var skipped, scanned int
	var countMu sync.Mutex
	count := func(wasScanned bool) {
		countMu.Lock()
		if wasScanned {
			scanned++
		} else {
			skipped++
		}
		countMu.Unlock()
	}

	forks := make([]*collect.Renderer, jobs)
	var wg sync.WaitGroup
	wg.Add(jobs)
	for i := 0; i < jobs; i++ {
		sess, fork := s.NewSession()
		forks[i] = fork
		go func() {
			defer wg.Done()
			for c := range queue {
				if ctx.Err() != nil {
					continue
				}
				ok, err := s.scanFile(ctx, sess, fork, c, opts)
				switch {
				case err == nil:
					count(ok)
				case errors.Is(err, context.Canceled):
					continue
				default:
					addErr(c.path, "scan", err)
				}
				if snap, notify := est.Advance(1, c.size); notify {
					observer.Publish(snap)
				}
			}
		}()
	}

	walkErr := s.walk(ctx, opts, queue, est, addErr)
	close(queue)
	wg.Wait()
	observer.Done(est.Complete())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}

	var items []model.Annotation
	for _, fork := range forks {
		items = append(items, fork.Take()...)
	}
	collect.Sort(items)

	sort.Slice(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			return errs[i].Stage < errs[j].Stage
		}
		return errs[i].File < errs[j].File
	})

	res := &Result{
		Items:      items,
		Files:      scanned,
		Skipped:    skipped,
		Total:      len(items),
		ElapsedMS:  time.Since(start).Milliseconds(),
		Errors:     errs,
		ErrorCount: len(errs),
	}
	log.Debug().
		Int("files", res.Files).
		Int("skipped", res.Skipped).
		Int("annotations", res.Total).
		Int("errors", res.ErrorCount).
		Int64("elapsed_ms", res.ElapsedMS).
		Msg("workspace scan")
	return res, nil
}

// walk feeds queue with the files selected under every root.
func (s *Scanner) walk(ctx context.Context, opts Options, queue chan<- candidate, est *progress.Estimator, addErr func(string, string, error)) error {
	for _, root := range opts.Roots {
		info, err := s.fs.Stat(root)
		if err != nil {
			addErr(root, "walk", err)
			continue
		}
		if !info.IsDir() {
			// explicitly named files bypass include/exclude
			est.AddTotal(1)
			if !send(ctx, queue, candidate{path: root, size: info.Size()}) {
				return ctx.Err()
			}
			continue
		}
		err = afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				addErr(path, "walk", err)
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			rel := relSlash(root, path)
			if info.IsDir() {
				if path == root {
					return nil
				}
				if SkippedDir(info.Name()) || matchAny(opts.Exclude, rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}
			if matchAny(opts.Exclude, rel) {
				return nil
			}
			if len(opts.Include) > 0 && !matchAny(opts.Include, rel) {
				return nil
			}
			est.AddTotal(1)
			if !send(ctx, queue, candidate{path: path, size: info.Size()}) {
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	est.Stage(progress.StageScan)
	return nil
}

// scanFile reads, classifies and scans one file. The bool reports whether
// the file was scanned rather than skipped.
func (s *Scanner) scanFile(ctx context.Context, sess *scan.Session, rd *collect.Renderer, c candidate, opts Options) (bool, error) {
	if opts.MaxFileBytes > 0 && c.size > int64(opts.MaxFileBytes) {
		zerolog.Ctx(ctx).Debug().Str("path", c.path).Int64("size", c.size).Msg("skip large file")
		return false, nil
	}
	data, err := afero.ReadFile(s.fs, c.path)
	if err != nil {
		return false, err
	}
	if isBinary(data) {
		return false, nil
	}
	lang := opts.ForceLanguage
	if lang == "" {
		info := detect.FromPathAndContent(c.path, data)
		if !detect.MatchesLang(info, opts.Langs) {
			return false, nil
		}
		lang = info.Name
	}
	if lang == "" || !grammar.Known(lang) {
		return false, nil
	}
	doc := buffer.New(filepath.ToSlash(c.path), lang, string(data))
	if _, err := sess.Update(ctx, doc, rd); err != nil {
		return false, err
	}
	return true, nil
}

// Accepts reports whether a file at rel, relative to its root, passes the
// include and exclude patterns.
func (o Options) Accepts(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, part := range strings.Split(rel, "/") {
		if SkippedDir(part) {
			return false
		}
	}
	if matchAny(o.Exclude, rel) {
		return false
	}
	return len(o.Include) == 0 || matchAny(o.Include, rel)
}

// SkippedDir reports whether directories named name are never walked.
func SkippedDir(name string) bool {
	_, ok := skippedDirs[name]
	return ok
}

func send(ctx context.Context, queue chan<- candidate, c candidate) bool {
	select {
	case queue <- c:
		return true
	case <-ctx.Done():
		return false
	}
}

func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func validatePatterns(groups ...[]string) error {
	for _, group := range groups {
		for _, p := range group {
			if !doublestar.ValidatePattern(p) {
				return errors.Errorf("invalid glob pattern: %q", p)
			}
		}
	}
	return nil
}
