package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu         sync.Mutex
	lists      [][]domain.Candidate
	listErr    error
	listCalls  int
	updateErr  error
	updates    []update
	createdIDs []string
}

type update struct {
	id    string
	patch domain.CandidatePatch
}

func (f *fakeRepo) List(_ context.Context) ([]domain.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.lists) == 0 {
		return nil, nil
	}
	next := f.lists[0]
	if len(f.lists) > 1 {
		f.lists = f.lists[1:]
	}
	return next, nil
}

func (f *fakeRepo) Create(_ context.Context, c *domain.Candidate) error {
	f.createdIDs = append(f.createdIDs, c.ID)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id string, patch domain.CandidatePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, update{id: id, patch: patch})
	return f.updateErr
}

func (f *fakeRepo) FindByEmail(_ context.Context, email string) (*domain.Candidate, error) {
	return nil, nil
}

func (f *fakeRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func strPtr(s string) *string { return &s }

func TestStoreFetch(t *testing.T) {
	t.Run("Should replace the list wholesale on success", func(t *testing.T) {
		repo := &fakeRepo{lists: [][]domain.Candidate{
			{{ID: "rec_1"}, {ID: "rec_2"}},
			{{ID: "rec_3"}},
		}}
		s := store.NewCandidateStore(repo)

		require.NoError(t, s.Fetch(context.Background()))
		require.NoError(t, s.Fetch(context.Background()))

		snap := s.Snapshot()
		assert.Equal(t, []domain.Candidate{{ID: "rec_3"}}, snap.Items)
		assert.True(t, snap.Loaded)
		assert.False(t, snap.Loading)
		assert.Empty(t, snap.Error)
	})

	t.Run("Should keep the previous list and record the error on failure", func(t *testing.T) {
		repo := &fakeRepo{lists: [][]domain.Candidate{{{ID: "rec_1"}}}}
		s := store.NewCandidateStore(repo)
		require.NoError(t, s.Fetch(context.Background()))

		repo.listErr = errors.New("notion: bad status 502")
		err := s.Fetch(context.Background())

		assert.Error(t, err)
		snap := s.Snapshot()
		assert.Equal(t, []domain.Candidate{{ID: "rec_1"}}, snap.Items)
		assert.Equal(t, "notion: bad status 502", snap.Error)
		assert.False(t, snap.Loading)
	})

	t.Run("Should clear the error when a new fetch starts", func(t *testing.T) {
		repo := &fakeRepo{listErr: errors.New("boom")}
		s := store.NewCandidateStore(repo)
		_ = s.Fetch(context.Background())
		require.Equal(t, "boom", s.Snapshot().Error)

		repo.listErr = nil
		require.NoError(t, s.Fetch(context.Background()))
		assert.Empty(t, s.Snapshot().Error)
	})

	t.Run("Should discard a response older than the last applied one", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		var calls int
		var mu sync.Mutex

		loader := store.LoaderFunc[domain.Candidate](func(ctx context.Context) ([]domain.Candidate, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				close(entered)
				<-release
				return []domain.Candidate{{ID: "old"}}, nil
			}
			return []domain.Candidate{{ID: "new"}}, nil
		})
		s := store.New[domain.Candidate, domain.CandidatePatch](loader)

		slow := make(chan error, 1)
		go func() { slow <- s.Fetch(context.Background()) }()
		<-entered

		require.NoError(t, s.Fetch(context.Background()))
		close(release)

		assert.ErrorIs(t, <-slow, store.ErrStale)
		assert.Equal(t, []domain.Candidate{{ID: "new"}}, s.Items())
		assert.False(t, s.Snapshot().Loading)
	})

	t.Run("Should not let an in-flight fetch overwrite a local merge", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		first := true
		loader := store.LoaderFunc[domain.Candidate](func(ctx context.Context) ([]domain.Candidate, error) {
			if first {
				first = false
				return []domain.Candidate{{ID: "rec_1", Mobile: "111"}}, nil
			}
			close(entered)
			<-release
			return []domain.Candidate{{ID: "rec_1", Mobile: "111"}}, nil
		})
		s := store.New[domain.Candidate, domain.CandidatePatch](loader)
		require.NoError(t, s.Fetch(context.Background()))

		slow := make(chan error, 1)
		go func() { slow <- s.Fetch(context.Background()) }()
		<-entered

		n := s.Merge(func(c domain.Candidate) bool { return c.ID == "rec_1" }, func(c *domain.Candidate) {
			c.Mobile = "999"
		})
		require.Equal(t, 1, n)
		close(release)

		assert.ErrorIs(t, <-slow, store.ErrStale)
		assert.Equal(t, "999", s.Items()[0].Mobile)
	})
}

func TestStoreOwnsItsList(t *testing.T) {
	src := []domain.Candidate{{ID: "rec_1", Location: "Pune"}}
	s := store.New[domain.Candidate, domain.CandidatePatch](store.LoaderFunc[domain.Candidate](func(context.Context) ([]domain.Candidate, error) {
		return src, nil
	}))
	require.NoError(t, s.Fetch(context.Background()))

	t.Run("Should merge without writing through to the loader's slice", func(t *testing.T) {
		n := s.Merge(func(c domain.Candidate) bool { return c.ID == "rec_1" }, func(c *domain.Candidate) {
			c.Location = "Mumbai"
		})

		assert.Equal(t, 1, n)
		assert.Equal(t, "Mumbai", s.Items()[0].Location)
		assert.Equal(t, "Pune", src[0].Location)
	})

	t.Run("Should append without growing the loader's slice", func(t *testing.T) {
		s.Append(domain.Candidate{ID: "rec_2"})

		assert.Len(t, s.Items(), 2)
		assert.Len(t, src, 1)
	})

	t.Run("Should start from the loader's values again after a refetch", func(t *testing.T) {
		require.NoError(t, s.Fetch(context.Background()))

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Pune", items[0].Location)
	})
}

func TestStoreUpdate(t *testing.T) {
	t.Run("Should forward only the patch and leave the list untouched", func(t *testing.T) {
		repo := &fakeRepo{lists: [][]domain.Candidate{{{ID: "rec_1", Mobile: "111"}}}}
		s := store.NewCandidateStore(repo)
		require.NoError(t, s.Fetch(context.Background()))
		before := repo.calls()

		patch := domain.CandidatePatch{Mobile: strPtr("9999999999")}
		require.NoError(t, s.Update(context.Background(), "rec_1", patch))

		require.Len(t, repo.updates, 1)
		assert.Equal(t, "rec_1", repo.updates[0].id)
		assert.Equal(t, []string{domain.FieldMobile}, repo.updates[0].patch.Fields())
		// No implicit refetch and no local change.
		assert.Equal(t, before, repo.calls())
		assert.Equal(t, "111", s.Items()[0].Mobile)
		assert.False(t, s.Snapshot().Updating)
	})

	t.Run("Should record the error and leave the record unmodified on failure", func(t *testing.T) {
		repo := &fakeRepo{
			lists:     [][]domain.Candidate{{{ID: "rec_1", Mobile: "111"}}},
			updateErr: errors.New("notion: 409 conflict_error: conflict"),
		}
		s := store.NewCandidateStore(repo)
		require.NoError(t, s.Fetch(context.Background()))

		err := s.Update(context.Background(), "rec_1", domain.CandidatePatch{Mobile: strPtr("222")})

		assert.Error(t, err)
		snap := s.Snapshot()
		assert.Equal(t, "notion: 409 conflict_error: conflict", snap.Error)
		assert.Equal(t, "111", snap.Items[0].Mobile)
		assert.False(t, snap.Updating)
	})

	t.Run("Should refuse updates on a read-only store", func(t *testing.T) {
		s := store.New[domain.User, struct{}](store.LoaderFunc[domain.User](func(context.Context) ([]domain.User, error) {
			return nil, nil
		}))
		assert.ErrorIs(t, s.Update(context.Background(), "u1", struct{}{}), store.ErrReadOnly)
	})
}

func TestStoreFreshness(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	repo := &fakeRepo{lists: [][]domain.Candidate{{{ID: "rec_1"}}}}
	s := store.NewCandidateStore(repo, store.WithClock[domain.Candidate, domain.CandidatePatch](clock))

	t.Run("Should be stale before the first load", func(t *testing.T) {
		assert.True(t, s.Stale(time.Minute))
	})

	t.Run("Should fetch once and then serve the cached list", func(t *testing.T) {
		require.NoError(t, s.EnsureFresh(context.Background(), time.Minute))
		require.NoError(t, s.EnsureFresh(context.Background(), time.Minute))
		assert.Equal(t, 1, repo.calls())
	})

	t.Run("Should refetch once the list is older than max age", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		require.NoError(t, s.EnsureFresh(context.Background(), time.Minute))
		assert.Equal(t, 2, repo.calls())
	})

	t.Run("Should serve the stale list when a refresh fails", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		repo.listErr = errors.New("timeout")
		assert.NoError(t, s.EnsureFresh(context.Background(), time.Minute))
		assert.Equal(t, "timeout", s.Snapshot().Error)
		assert.Len(t, s.Items(), 1)
	})

	t.Run("Should surface the error when nothing was ever loaded", func(t *testing.T) {
		empty := store.NewCandidateStore(&fakeRepo{listErr: errors.New("timeout")})
		assert.Error(t, empty.EnsureFresh(context.Background(), time.Minute))
		assert.False(t, empty.Snapshot().Loaded)
	})

	t.Run("Should reset everything on Clear", func(t *testing.T) {
		s.Clear()
		snap := s.Snapshot()
		assert.Empty(t, snap.Items)
		assert.False(t, snap.Loaded)
		assert.Empty(t, snap.Error)
	})
}
