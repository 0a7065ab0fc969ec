package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chefdhundo-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pending_edit:"

type pendingEditRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPendingEditRepository stores each owner's pending edit as a JSON value
// that expires after ttl.
func NewPendingEditRepository(client *redis.Client, ttl time.Duration) domain.PendingEditRepository {
	return &pendingEditRepo{client: client, ttl: ttl}
}

func (r *pendingEditRepo) Get(ctx context.Context, owner string) (*domain.PendingEdit, error) {
	raw, err := r.client.Get(ctx, keyPrefix+owner).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get pending edit: %w", err)
	}

	var edit domain.PendingEdit
	if err := json.Unmarshal(raw, &edit); err != nil {
		return nil, fmt.Errorf("decode pending edit: %w", err)
	}
	return &edit, nil
}

func (r *pendingEditRepo) Save(ctx context.Context, owner string, edit domain.PendingEdit) error {
	raw, err := json.Marshal(edit)
	if err != nil {
		return fmt.Errorf("encode pending edit: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+owner, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set pending edit: %w", err)
	}
	return nil
}

func (r *pendingEditRepo) Delete(ctx context.Context, owner string) error {
	if err := r.client.Del(ctx, keyPrefix+owner).Err(); err != nil {
		return fmt.Errorf("redis delete pending edit: %w", err)
	}
	return nil
}
