// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the delay before firing the OnChange callback after the
// last filesystem event, so that an editor writing then renaming a temp file
// yields one callback.
const DefaultDebounce = 500 * time.Millisecond

var (
	// DefaultPatterns select the files a menu tree is built from.
	DefaultPatterns = []string{"**/*.menu", "**/*.desktop", "**/*.directory"}

	// defaultIgnores lists path patterns that are always excluded, covering
	// editor swap files and dpkg/rpm staging files.
	defaultIgnores = []string{
		"**/.*.swp",
		"**/*.swp",
		"**/*~",
		"**/*.dpkg-new",
		"**/*.dpkg-tmp",
		"**/*.rpmnew",
	}

	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Roots are the directories to watch recursively. Missing roots are
		// picked up when they appear.
		Roots []string

		// Patterns are doublestar globs, relative to the owning root, that
		// select which files trigger callbacks. Empty means DefaultPatterns.
		Patterns []string

		// Ignore are additional doublestar globs for paths that never
		// trigger callbacks. They are merged with the built-in ignores.
		Ignore []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative values use DefaultDebounce.
		Debounce time.Duration

		// ClearScreen writes an ANSI clear sequence to Stdout before each
		// callback. Callers should only enable it on a terminal.
		ClearScreen bool

		// Stdout receives the clear sequence. Nil means os.Stdout.
		Stdout io.Writer

		// Logger receives watcher diagnostics. Nil discards.
		Logger *log.Logger

		// OnChange is called after the debounce window closes with the sorted,
		// deduplicated absolute paths that changed. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error
	}

	// Watcher monitors a set of directory trees and fires a debounced
	// callback when matching files change. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		patterns []string
		ignores  []string
		debounce time.Duration
		stdout   io.Writer
		logger   *log.Logger
		started  atomic.Bool

		mu      sync.Mutex
		roots   []string
		targets map[string]string // tracked root -> watched directory with symlinks resolved
		missing map[string]struct{}
		watched map[string]struct{}
	}
)

// New creates a Watcher from cfg and registers every existing directory
// under cfg.Roots.
func New(cfg Config) (*Watcher, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	// Validate eagerly so invalid globs fail at construction time rather
	// than silently never matching.
	if err := validatePatterns(patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		patterns: slices.Clone(patterns),
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		debounce: debounce,
		stdout:   stdout,
		logger:   logger,
		targets:  make(map[string]string),
		missing:  make(map[string]struct{}),
		watched:  make(map[string]struct{}),
	}

	if err := w.Track(cfg.Roots...); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("close after init failure", "error", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// Track adds roots to the watched set. Roots already tracked are ignored,
// so callers may pass a reloaded tree's full directory list.
func (w *Watcher) Track(roots ...string) error {
	for _, r := range roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			return fmt.Errorf("watch: resolve %q: %w", r, err)
		}
		w.mu.Lock()
		known := slices.Contains(w.roots, abs)
		if !known {
			w.roots = append(w.roots, abs)
		}
		w.mu.Unlock()
		if known {
			continue
		}

		if isDir(abs) {
			base := w.resolveRoot(abs)
			if err := w.addTree(base, base); err != nil {
				return err
			}
			continue
		}
		w.mu.Lock()
		w.missing[abs] = struct{}{}
		w.mu.Unlock()
		w.addAnchor(abs)
	}
	return nil
}

// resolveRoot records and returns the directory watched for root: root with
// symlinks resolved, since a walk does not descend into a symlinked root.
func (w *Watcher) resolveRoot(root string) string {
	base := root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		base = resolved
	}
	w.mu.Lock()
	w.targets[root] = base
	w.mu.Unlock()
	return base
}

// Roots returns the tracked roots in the order they were added.
func (w *Watcher) Roots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.roots)
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on cancellation and
// propagates fatal watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu       sync.Mutex
		pending  = make(map[string]struct{})
		timer    *time.Timer
		stopped  bool
		inflight sync.WaitGroup
		running  atomic.Bool
	)

	// fire drains the pending set and invokes OnChange. A callback that
	// outlives the debounce period is never re-entered; the retry keeps
	// the pending set from being lost. Run waits for a callback in
	// progress before closing the fsnotify watcher.
	fire := func() {
		mu.Lock()
		if stopped || ctx.Err() != nil {
			mu.Unlock()
			return
		}
		inflight.Add(1)
		mu.Unlock()
		defer inflight.Done()

		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous callback still running, retrying")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.ClearScreen {
			// Clear screen and move the cursor home.
			fmt.Fprint(w.stdout, "\033[2J\033[H")
		}

		w.logger.Debug("change detected", "files", len(changed))
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("reload failed", "error", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		inflight.Wait()
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("close fsnotify", "error", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}
			if !w.relevant(evt) {
				continue
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			// Resource exhaustion means the watcher is fundamentally broken.
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "error", err)
		}
	}
}

// relevant classifies evt and keeps the watch set in step with directory
// creation and removal.
func (w *Watcher) relevant(evt fsnotify.Event) bool {
	root, base := w.owner(evt.Name)
	if root == "" {
		return w.checkMissing(evt.Name)
	}

	rel, err := filepath.Rel(base, evt.Name)
	if err != nil || w.isIgnored(rel) {
		return false
	}

	if evt.Has(fsnotify.Create) && isDir(evt.Name) {
		if err := w.addTree(base, evt.Name); err != nil {
			w.logger.Warn("watch new directory", "path", evt.Name, "error", err)
		}
		// Files may have landed before the directory was registered.
		return true
	}

	if evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename) {
		w.mu.Lock()
		_, wasDir := w.watched[evt.Name]
		delete(w.watched, evt.Name)
		if evt.Name == base {
			w.missing[root] = struct{}{}
		}
		w.mu.Unlock()
		if evt.Name == base {
			w.addAnchor(root)
		}
		if wasDir {
			return true
		}
	}

	if evt.Op == fsnotify.Chmod {
		return false
	}
	return w.matchesPatterns(rel)
}

// owner returns the tracked root whose watched directory is the longest one
// containing path, along with that directory. Both are "" when none does.
func (w *Watcher) owner(path string) (root, base string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, r := range w.roots {
		if _, gone := w.missing[r]; gone {
			continue
		}
		b, ok := w.targets[r]
		if !ok {
			b = r
		}
		if within(b, path) && len(b) > len(base) {
			root, base = r, b
		}
	}
	return root, base
}

// checkMissing handles an event on an ancestor of a missing root: it
// registers the root once it exists and extends the anchor chain otherwise.
func (w *Watcher) checkMissing(path string) bool {
	w.mu.Lock()
	var candidates []string
	for r := range w.missing {
		if within(path, r) {
			candidates = append(candidates, r)
		}
	}
	w.mu.Unlock()

	appeared := false
	for _, r := range candidates {
		if !isDir(r) {
			w.addAnchor(r)
			// The root may have been completed while the anchor was added.
			if !isDir(r) {
				continue
			}
		}
		w.mu.Lock()
		delete(w.missing, r)
		w.mu.Unlock()
		base := w.resolveRoot(r)
		if err := w.addTree(base, base); err != nil {
			w.logger.Warn("watch new root", "path", r, "error", err)
			continue
		}
		w.logger.Debug("root appeared", "path", r)
		appeared = true
	}
	return appeared
}

// addTree registers dir and every non-ignored directory below it; root is
// the tracked root patterns are relative to.
func (w *Watcher) addTree(root, dir string) error {
	walkErr := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			// Unreadable subtrees are skipped rather than aborting the walk.
			w.logger.Debug("skipping inaccessible path", "path", path, "error", walkDirErr)
			return nil //nolint:nilerr // intentional skip of inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(root, path); err == nil && rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}
		return w.add(path)
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

// addAnchor watches the nearest existing ancestor of a missing root.
func (w *Watcher) addAnchor(missing string) {
	dir := filepath.Dir(missing)
	for !isDir(dir) {
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
	if err := w.add(dir); err != nil {
		w.logger.Debug("cannot watch ancestor", "path", dir, "error", err)
	}
}

func (w *Watcher) add(dir string) error {
	w.mu.Lock()
	_, ok := w.watched[dir]
	w.watched[dir] = struct{}{}
	w.mu.Unlock()
	if ok {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		w.mu.Lock()
		delete(w.watched, dir)
		w.mu.Unlock()
		return fmt.Errorf("watch: add directory %q: %w", dir, err)
	}
	return nil
}

// isIgnored returns true if rel matches any ignore pattern.
func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

// matchesPatterns returns true if rel matches at least one watch pattern.
func (w *Watcher) matchesPatterns(rel string) bool {
	return matchAny(w.patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

// validatePatterns checks that every pattern is a valid doublestar glob.
func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
