// Package store owns the editable gradient configuration.
//
// A Store hands out isolated snapshots (GradientConfig is a plain value) and
// serialises every mutation behind one mutex, so the last writer wins and a
// render loop calling Snapshot once per frame never sees a half-applied
// edit. Edits are recorded in a bounded undo history; rapid edits within the
// debounce window (a slider drag) collapse into one undo step.
package store

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gradient"
)

var (
	// ErrNothingToUndo is returned by Undo with an empty history.
	ErrNothingToUndo = errors.New("store: nothing to undo")

	// ErrNothingToRedo is returned by Redo when no undo can be reverted.
	ErrNothingToRedo = errors.New("store: nothing to redo")
)

const (
	// DefaultHistory is the default number of undo steps kept.
	DefaultHistory = 50

	// DefaultDebounce is the default window in which edits merge.
	DefaultDebounce = 300 * time.Millisecond
)

// Option configures a Store.
type Option func(*options)

type options struct {
	history  int
	debounce time.Duration
	provider gradient.TimeProvider
}

// WithHistory bounds the undo history to n steps. n <= 0 disables undo.
func WithHistory(n int) Option {
	return func(o *options) {
		o.history = n
	}
}

// WithDebounce sets the window in which consecutive edits merge into a
// single undo step. Zero records every edit.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithTimeProvider sets the clock used for debouncing.
func WithTimeProvider(p gradient.TimeProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now() }

// Store is the configuration store. The zero value is not usable; call New.
//
// Thread safety: all methods are safe for concurrent use.
type Store struct {
	current atomic.Pointer[gradient.GradientConfig]
	version atomic.Uint64

	mu       sync.Mutex
	opts     options
	undo     []gradient.GradientConfig
	redo     []gradient.GradientConfig
	lastEdit time.Time
	presets  map[string]gradient.GradientConfig
}

// New returns a store holding cfg.
func New(cfg gradient.GradientConfig, opts ...Option) *Store {
	o := options{history: DefaultHistory, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}
	if o.provider == nil {
		o.provider = systemTime{}
	}
	s := &Store{opts: o, presets: make(map[string]gradient.GradientConfig)}
	s.current.Store(&cfg)
	return s
}

// Snapshot returns a copy of the current configuration. It never blocks on
// writers.
func (s *Store) Snapshot() gradient.GradientConfig {
	return *s.current.Load()
}

// Version increases by one with every published change.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// Update applies fn to a copy of the current configuration and publishes
// the result. The previous configuration is pushed onto the undo history
// unless the last edit happened within the debounce window.
func (s *Store) Update(fn func(*gradient.GradientConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.update(fn, true)
}

// Replace publishes cfg as a single undoable edit that never merges with
// its neighbours.
func (s *Store) Replace(cfg gradient.GradientConfig) {
	s.step(func(c *gradient.GradientConfig) { *c = cfg })
}

// step applies fn as its own undo step. Edits on either side of it start
// new steps.
func (s *Store) step(fn func(*gradient.GradientConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.update(fn, false)
	s.lastEdit = time.Time{}
}

// update applies fn and records history. Caller holds mu.
func (s *Store) update(fn func(*gradient.GradientConfig), mergeable bool) {
	prev := s.Snapshot()
	next := prev
	fn(&next)

	now := s.opts.provider.Now()
	merge := mergeable && s.opts.debounce > 0 && !s.lastEdit.IsZero() &&
		now.Sub(s.lastEdit) < s.opts.debounce && len(s.undo) > 0
	if !merge {
		s.pushUndo(prev)
	}
	s.lastEdit = now
	s.redo = s.redo[:0]
	s.publish(next)
}

// Commit closes the current debounce window, so the next edit starts a new
// undo step.
func (s *Store) Commit() {
	s.mu.Lock()
	s.lastEdit = time.Time{}
	s.mu.Unlock()
}

// Undo restores the configuration before the most recent undo step.
func (s *Store) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	prev := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	cur := s.Snapshot()
	s.redo = append(s.redo, cur)
	s.lastEdit = time.Time{}
	s.publish(keepFrozen(prev, cur))
	return nil
}

// Redo reapplies the most recently undone step.
func (s *Store) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return ErrNothingToRedo
	}
	next := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	cur := s.Snapshot()
	s.pushUndo(cur)
	s.lastEdit = time.Time{}
	s.publish(keepFrozen(next, cur))
	return nil
}

// CanUndo reports whether Undo would succeed.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether Redo would succeed.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// FreezeAt pins the time uniform to t. Freezing is viewer state, not an
// edit, so it bypasses the undo history.
func (s *Store) FreezeAt(t float64) {
	s.setFrozen(gradient.FrozenAt(t))
}

// Unfreeze hands time back to the clock.
func (s *Store) Unfreeze() {
	s.setFrozen(gradient.Running)
}

func (s *Store) setFrozen(f gradient.OptionalTime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.Snapshot()
	next.Animation.Frozen = f
	s.publish(next)
}

// SetBaseWeight is Update with GradientConfig.SetBaseWeight.
func (s *Store) SetBaseWeight(w0 int) {
	s.Update(func(c *gradient.GradientConfig) { c.SetBaseWeight(w0) })
}

// SetForegroundWeight is Update with GradientConfig.SetForegroundWeight.
func (s *Store) SetForegroundWeight(index, value int) {
	s.Update(func(c *gradient.GradientConfig) { c.SetForegroundWeight(index, value) })
}

// AddFourthColor applies GradientConfig.AddFourthColor as its own undo
// step.
func (s *Store) AddFourthColor(col gradient.RGBA) {
	s.step(func(c *gradient.GradientConfig) { c.AddFourthColor(col) })
}

// RemoveFourthColor applies GradientConfig.RemoveFourthColor as its own
// undo step.
func (s *Store) RemoveFourthColor() {
	s.step(func(c *gradient.GradientConfig) { c.RemoveFourthColor() })
}

// SetTextSafe applies GradientConfig.SetTextSafe as its own undo step.
func (s *Store) SetTextSafe(enabled bool) {
	s.step(func(c *gradient.GradientConfig) { c.SetTextSafe(enabled) })
}

// SetMode sets the gradient mode as its own undo step.
func (s *Store) SetMode(m gradient.Mode) {
	s.step(func(c *gradient.GradientConfig) { c.Mode = m })
}

// pushUndo appends cfg, dropping the oldest step beyond the history bound.
// Caller holds mu.
func (s *Store) pushUndo(cfg gradient.GradientConfig) {
	if s.opts.history <= 0 {
		return
	}
	if len(s.undo) >= s.opts.history {
		copy(s.undo, s.undo[1:])
		s.undo = s.undo[:len(s.undo)-1]
	}
	s.undo = append(s.undo, cfg)
}

// publish makes cfg the current configuration. Caller holds mu.
func (s *Store) publish(cfg gradient.GradientConfig) {
	s.current.Store(&cfg)
	s.version.Add(1)
}

// keepFrozen carries the viewer's frozen time across history moves.
func keepFrozen(cfg, cur gradient.GradientConfig) gradient.GradientConfig {
	cfg.Animation.Frozen = cur.Animation.Frozen
	return cfg
}
