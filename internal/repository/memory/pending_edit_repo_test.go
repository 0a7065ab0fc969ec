package memory_test

import (
	"context"
	"testing"
	"time"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingEditRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	repo := memory.NewPendingEditRepository(time.Minute).WithClock(func() time.Time { return now })

	t.Run("Should return nil when nothing is pending", func(t *testing.T) {
		edit, err := repo.Get(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Nil(t, edit)
	})

	t.Run("Should keep one edit per owner", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "a@x.com", domain.PendingEdit{Field: domain.FieldName, Value: "A"}))
		require.NoError(t, repo.Save(ctx, "a@x.com", domain.PendingEdit{Field: domain.FieldMobile, Value: "1"}))

		edit, err := repo.Get(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, domain.FieldMobile, edit.Field)
	})

	t.Run("Should expire edits after the ttl", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "b@x.com", domain.PendingEdit{Field: domain.FieldName, Value: "B"}))
		now = now.Add(time.Minute)

		edit, err := repo.Get(ctx, "b@x.com")
		require.NoError(t, err)
		assert.Nil(t, edit)
	})

	t.Run("Should delete", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "c@x.com", domain.PendingEdit{Field: domain.FieldName}))
		require.NoError(t, repo.Delete(ctx, "c@x.com"))

		edit, err := repo.Get(ctx, "c@x.com")
		require.NoError(t, err)
		assert.Nil(t, edit)
	})
}
