// Package watch rescans files as they change on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/phyten/tagmark/internal/model"
	"github.com/phyten/tagmark/internal/workspace"
)

const DefaultDebounce = 100 * time.Millisecond

type Options struct {
	// Scan carries the roots and file filters. Jobs applies to the
	// initial pass only.
	Scan     workspace.Options
	Debounce time.Duration
	// Initial runs a full scan of the roots before watching.
	Initial bool
}

// Event is the outcome of one pass. Path is empty for the initial pass.
// Removed is set when the file is gone; consumers drop what they hold for
// it.
type Event struct {
	PassID  uuid.UUID             `json:"pass_id"`
	Path    string                `json:"path,omitempty"`
	Removed bool                  `json:"removed,omitempty"`
	Items   []model.Annotation    `json:"items"`
	Errors  []workspace.FileError `json:"errors,omitempty"`
}

type Handler func(Event)

// root pairs a watched root with the spelling the caller used, so that
// paths in events match those of the initial pass.
type root struct {
	abs  string
	orig string
}

type watcher struct {
	scanner *workspace.Scanner
	opts    Options
	handler Handler
	fsw     *fsnotify.Watcher
	roots   []root

	mu      sync.Mutex
	gen     map[string]uint64
	pending map[string]*time.Timer
	passes  sync.WaitGroup
}

// Run watches opts.Scan.Roots until ctx is cancelled. Every create or write
// of a selected file schedules a pass over that file alone; a later change
// of the same file supersedes a pass still running, so handler only sees
// the latest result per file. handler is never called concurrently.
func Run(ctx context.Context, scanner *workspace.Scanner, opts Options, handler Handler) (err error) {
	log := zerolog.Ctx(ctx)
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if handler == nil {
		handler = func(Event) {}
	}
	roots := opts.Scan.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w := &watcher{
		scanner: scanner,
		opts:    opts,
		fsw:     fsw,
		gen:     make(map[string]uint64),
		pending: make(map[string]*time.Timer),
	}
	var handlerMu sync.Mutex
	w.handler = func(ev Event) {
		handlerMu.Lock()
		defer handlerMu.Unlock()
		handler(ev)
	}
	defer func() {
		w.stop()
		err = multierr.Append(err, fsw.Close())
	}()

	for _, r := range roots {
		abs, absErr := filepath.Abs(r)
		if absErr != nil {
			return absErr
		}
		w.roots = append(w.roots, root{abs: abs, orig: r})
		if addErr := w.addTree(abs); addErr != nil {
			return addErr
		}
	}

	if opts.Initial {
		id := uuid.New()
		initial := opts.Scan
		initial.Roots = roots
		res, runErr := scanner.Run(ctx, initial)
		if runErr != nil {
			return runErr
		}
		log.Debug().Str("pass", id.String()).Int("annotations", res.Total).Msg("initial pass")
		w.handler(Event{PassID: id, Items: res.Items, Errors: res.Errors})
	}

	var errs error
	for {
		select {
		case <-ctx.Done():
			return errs
		case ev, ok := <-fsw.Events:
			if !ok {
				return errs
			}
			w.handle(ctx, ev)
		case watchErr, ok := <-fsw.Errors:
			if !ok {
				return errs
			}
			log.Warn().Err(watchErr).Msg("watch error")
			errs = multierr.Append(errs, watchErr)
		}
	}
}

// addTree watches dir and every directory below it that the filters do
// not prune.
func (w *watcher) addTree(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.fsw.Add(filepath.Dir(dir))
	}
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != dir && workspace.SkippedDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}

func (w *watcher) handle(ctx context.Context, ev fsnotify.Event) {
	path := ev.Name
	switch {
	case ev.Has(fsnotify.Create):
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if w.selectedDir(path) {
				if err := w.addTree(path); err != nil {
					zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("watch directory")
				}
			}
			return
		}
		w.schedule(ctx, path, false)
	case ev.Has(fsnotify.Write):
		w.schedule(ctx, path, false)
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.schedule(ctx, path, true)
	}
}

// schedule debounces changes of path. Each call bumps the generation of
// path so that passes started earlier discard their result.
func (w *watcher) schedule(ctx context.Context, path string, removed bool) {
	display, ok := w.selected(path)
	if !ok {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen == nil {
		return
	}
	w.gen[path]++
	g := w.gen[path]
	if t, ok := w.pending[path]; ok && t.Stop() {
		w.passes.Done()
	}
	w.passes.Add(1)
	w.pending[path] = time.AfterFunc(w.opts.Debounce, func() {
		defer w.passes.Done()
		w.pass(ctx, path, display, g, removed)
	})
}

func (w *watcher) pass(ctx context.Context, path, display string, g uint64, removed bool) {
	if ctx.Err() != nil {
		return
	}
	id := uuid.New()
	log := zerolog.Ctx(ctx).With().Str("pass", id.String()).Str("path", display).Logger()
	ev := Event{PassID: id, Path: display, Removed: removed}
	if !removed {
		scanOpts := w.opts.Scan
		scanOpts.Roots = []string{display}
		scanOpts.Jobs = 1
		res, err := w.scanner.Run(ctx, scanOpts)
		if err != nil {
			log.Debug().Err(err).Msg("pass aborted")
			return
		}
		ev.Items, ev.Errors = res.Items, res.Errors
	}
	if w.stale(path, g) {
		log.Debug().Msg("pass superseded")
		return
	}
	log.Debug().Int("annotations", len(ev.Items)).Bool("removed", removed).Msg("pass")
	w.handler(ev)
}

func (w *watcher) stale(path string, g uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gen[path] != g
}

// stop cancels pending passes and waits for running ones.
func (w *watcher) stop() {
	w.mu.Lock()
	for path, t := range w.pending {
		if t.Stop() {
			w.passes.Done()
		}
		delete(w.pending, path)
	}
	w.gen = nil
	w.mu.Unlock()
	w.passes.Wait()
}

// selected applies the scan filters to a file event and returns the path
// spelled relative to the caller's root.
func (w *watcher) selected(path string) (string, bool) {
	r, rel, ok := w.locate(path)
	if !ok {
		return "", false
	}
	if r.abs == path {
		return r.orig, true
	}
	return filepath.Join(r.orig, rel), w.opts.Scan.Accepts(rel)
}

func (w *watcher) selectedDir(path string) bool {
	_, rel, ok := w.locate(path)
	if !ok {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if workspace.SkippedDir(part) {
			return false
		}
	}
	return true
}

func (w *watcher) locate(path string) (root, string, bool) {
	for _, r := range w.roots {
		if path == r.abs {
			return r, filepath.Base(path), true
		}
		rel, err := filepath.Rel(r.abs, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return r, rel, true
	}
	return root{}, "", false
}
