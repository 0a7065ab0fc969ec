package domain

import (
	"context"
	"time"
)

// PendingEdit is the value being edited on the owner's dashboard. One field
// is edited at a time.
type PendingEdit struct {
	Field     string      `json:"field"`
	Value     interface{} `json:"value"`
	StartedAt time.Time   `json:"started_at"`
}

// EditSession is what the dashboard renders: the active field, if any.
type EditSession struct {
	Editing bool        `json:"editing"`
	Field   string      `json:"field,omitempty"`
	Value   interface{} `json:"value,omitempty"`
}

// PendingEditRepository stores pending edits by owner. Get returns nil and
// no error when the owner has nothing pending.
type PendingEditRepository interface {
	Get(ctx context.Context, owner string) (*PendingEdit, error)
	Save(ctx context.Context, owner string, edit PendingEdit) error
	Delete(ctx context.Context, owner string) error
}
