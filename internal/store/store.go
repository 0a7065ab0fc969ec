// Package store holds cached copies of the remote collections. A Store is a
// plain service object: callers construct it with the collaborators it
// needs and pass it around explicitly.
package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStale is returned by Fetch when a newer fetch or a local merge was
// applied while this one was in flight. Its response was discarded.
var ErrStale = errors.New("store: response superseded")

// ErrReadOnly is returned by Update on a store built without a Patcher.
var ErrReadOnly = errors.New("store: collection is read-only")

// Loader returns the full collection.
type Loader[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Patcher sends a partial update for one record.
type Patcher[P any] interface {
	Update(ctx context.Context, id string, patch P) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc[T any] func(ctx context.Context) ([]T, error)

func (f LoaderFunc[T]) List(ctx context.Context) ([]T, error) { return f(ctx) }

// PatcherFunc adapts a function to Patcher.
type PatcherFunc[P any] func(ctx context.Context, id string, patch P) error

func (f PatcherFunc[P]) Update(ctx context.Context, id string, patch P) error {
	return f(ctx, id, patch)
}

// Snapshot is a copy of the store state at one instant.
type Snapshot[T any] struct {
	Items    []T       `json:"items"`
	Loading  bool      `json:"loading"`
	Updating bool      `json:"updating"`
	Error    string    `json:"error,omitempty"`
	Loaded   bool      `json:"loaded"`
	LoadedAt time.Time `json:"loaded_at"`
}

type Option[T, P any] func(*Store[T, P])

// WithPatcher enables Update.
func WithPatcher[T, P any](p Patcher[P]) Option[T, P] {
	return func(s *Store[T, P]) { s.patcher = p }
}

// WithClock overrides time.Now, for tests.
func WithClock[T, P any](now func() time.Time) Option[T, P] {
	return func(s *Store[T, P]) { s.now = now }
}

// Store caches a collection of T and forwards partial updates P.
//
// Every fetch takes a sequence token when it is issued. A response is only
// applied if no state change with a newer token was applied first, so a slow
// response can never overwrite a newer list or a local merge. The mutex
// guards state only and is never held across I/O.
type Store[T, P any] struct {
	loader  Loader[T]
	patcher Patcher[P]
	now     func() time.Time

	mu       sync.RWMutex
	items    []T
	fetching int
	updating int
	errMsg   string
	loaded   bool
	loadedAt time.Time
	seq      uint64
	applied  uint64
}

func New[T, P any](loader Loader[T], opts ...Option[T, P]) *Store[T, P] {
	s := &Store[T, P]{
		loader: loader,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch loads the whole collection and replaces the cached list. On
// failure the error is recorded and the previous list is kept.
func (s *Store[T, P]) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	token := s.seq
	s.fetching++
	s.errMsg = ""
	s.mu.Unlock()

	items, err := s.loader.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching--

	if token < s.applied {
		return ErrStale
	}
	s.applied = token

	if err != nil {
		s.errMsg = errorMessage(err, "An error occurred")
		return err
	}

	// The loader keeps ownership of its slice.
	s.items = append([]T(nil), items...)
	s.loaded = true
	s.loadedAt = s.now()
	return nil
}

// Update forwards patch for record id. It never changes the cached list and
// never triggers a fetch; callers merge explicitly with Merge.
func (s *Store[T, P]) Update(ctx context.Context, id string, patch P) error {
	if s.patcher == nil {
		return ErrReadOnly
	}

	s.mu.Lock()
	s.updating++
	s.errMsg = ""
	s.mu.Unlock()

	err := s.patcher.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating--
	if err != nil {
		s.errMsg = errorMessage(err, "An error occurred while updating")
		return err
	}
	return nil
}

// Merge applies fn to every cached item matching match. Fetches issued
// before the merge are discarded when they resolve. Returns the number of
// items changed.
func (s *Store[T, P]) Merge(match func(T) bool, fn func(*T)) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.items {
		if match(s.items[i]) {
			fn(&s.items[i])
			n++
		}
	}
	if n > 0 {
		s.seq++
		s.applied = s.seq
	}
	return n
}

// Append adds a record created elsewhere to the cached list.
func (s *Store[T, P]) Append(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	s.seq++
	s.applied = s.seq
}

// Clear drops the cached list and all flags.
func (s *Store[T, P]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.errMsg = ""
	s.loaded = false
	s.loadedAt = time.Time{}
	s.seq++
	s.applied = s.seq
}

func (s *Store[T, P]) ClearError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

// Items returns a copy of the cached list.
func (s *Store[T, P]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T, P]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return Snapshot[T]{
		Items:    items,
		Loading:  s.fetching > 0,
		Updating: s.updating > 0,
		Error:    s.errMsg,
		Loaded:   s.loaded,
		LoadedAt: s.loadedAt,
	}
}

// Stale reports whether the list was never loaded or is older than maxAge.
// A zero maxAge only checks for the first load.
func (s *Store[T, P]) Stale(maxAge time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return true
	}
	return maxAge > 0 && s.now().Sub(s.loadedAt) > maxAge
}

// EnsureFresh fetches when the list is stale. A failed refresh of a list
// that was loaded before is not an error; the old list stays available and
// the failure is visible in Snapshot().Error.
func (s *Store[T, P]) EnsureFresh(ctx context.Context, maxAge time.Duration) error {
	if !s.Stale(maxAge) {
		return nil
	}
	err := s.Fetch(ctx)
	if err == nil || errors.Is(err, ErrStale) {
		return nil
	}
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return err
}

func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
