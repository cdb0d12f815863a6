// SPDX-License-Identifier: MPL-2.0

package menu

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Session publishes the current Tree and rebuilds it on demand. It is safe
// for concurrent use.
type Session struct {
	opts    Options
	current atomic.Pointer[Tree]
	// mu serializes reloads; readers never block.
	mu sync.Mutex
}

// NewSession loads the first tree.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	t, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	s := &Session{opts: opts}
	s.current.Store(t)
	return s, nil
}

// Tree returns the current snapshot. A returned tree stays valid after a
// reload replaces it.
func (s *Session) Tree() *Tree {
	return s.current.Load()
}

// Reload reruns the whole pipeline. On success the new tree is published and
// the previous one is invalidated; on failure the current tree is kept.
func (s *Session) Reload(ctx context.Context) (*Tree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := Load(ctx, s.opts)
	if err != nil {
		return nil, err
	}
	old := s.current.Swap(t)
	if old != nil {
		old.invalidate()
	}
	s.opts.Logger.Debug("menu reloaded", "files", len(t.Files))
	return t, nil
}

// Invalidate marks the current tree stale, closing its ReloadRequired
// channel. Callers that learn of changed source files, such as a filesystem
// watcher, call it to notify consumers.
func (s *Session) Invalidate() {
	if t := s.current.Load(); t != nil {
		t.invalidate()
	}
}

// ReloadRequired returns the notification channel of the current tree.
func (s *Session) ReloadRequired() <-chan struct{} {
	return s.current.Load().ReloadRequired()
}
