package memory

import (
	"context"
	"sync"
	"time"

	"chefdhundo-backend/internal/domain"
)

type entry struct {
	edit      domain.PendingEdit
	expiresAt time.Time
}

// PendingEditRepository keeps pending edits in process memory. It is used
// when Redis is not configured; edits are lost on restart.
type PendingEditRepository struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	edits map[string]entry
}

func NewPendingEditRepository(ttl time.Duration) *PendingEditRepository {
	return &PendingEditRepository{
		ttl:   ttl,
		now:   time.Now,
		edits: make(map[string]entry),
	}
}

// WithClock replaces the clock used for expiry.
func (r *PendingEditRepository) WithClock(now func() time.Time) *PendingEditRepository {
	r.now = now
	return r
}

func (r *PendingEditRepository) Get(_ context.Context, owner string) (*domain.PendingEdit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.edits[owner]
	if !ok {
		return nil, nil
	}
	if r.ttl > 0 && !r.now().Before(e.expiresAt) {
		delete(r.edits, owner)
		return nil, nil
	}
	edit := e.edit
	return &edit, nil
}

func (r *PendingEditRepository) Save(_ context.Context, owner string, edit domain.PendingEdit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edits[owner] = entry{edit: edit, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *PendingEditRepository) Delete(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.edits, owner)
	return nil
}
