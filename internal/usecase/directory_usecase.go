package usecase

import (
	"context"
	"time"

	"chefdhundo-backend/internal/directory"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/pkg/logger"
)

// ChefPage is one page of the chef directory as a viewer sees it.
type ChefPage struct {
	Items       []domain.Candidate `json:"items"`
	Total       int                `json:"total"`
	TotalPages  int                `json:"total_pages"`
	Page        int                `json:"page"`
	PageSize    int                `json:"page_size"`
	Professions []string           `json:"professions"`
	Filters     ChefFilters        `json:"filters"`
	ViewerRole  domain.Role        `json:"viewer_role"`
	// StaleError is set when the list is served from an older snapshot
	// because the last refresh failed.
	StaleError string `json:"stale_error,omitempty"`
}

type ChefFilters struct {
	Search     string               `json:"search"`
	Experience directory.Experience `json:"experience"`
	Profession string               `json:"profession"`
}

type DirectoryUsecase interface {
	ListChefs(ctx context.Context, viewer domain.Identity, q directory.Query) (*ChefPage, error)
	Professions(ctx context.Context) ([]string, error)
}

type directoryUsecase struct {
	candidates *store.CandidateStore
	roles      RoleUsecase
	maxAge     time.Duration
}

func NewDirectoryUsecase(candidates *store.CandidateStore, roles RoleUsecase, maxAge time.Duration) DirectoryUsecase {
	return &directoryUsecase{candidates: candidates, roles: roles, maxAge: maxAge}
}

func (u *directoryUsecase) load(ctx context.Context) ([]domain.Candidate, string, error) {
	if err := u.candidates.EnsureFresh(ctx, u.maxAge); err != nil {
		return nil, "", remoteError("Failed to fetch chefs", err)
	}
	snap := u.candidates.Snapshot()
	return snap.Items, snap.Error, nil
}

func (u *directoryUsecase) ListChefs(ctx context.Context, viewer domain.Identity, q directory.Query) (*ChefPage, error) {
	records, staleErr, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	// Unresolved role stays empty and is masked like basic.
	role := u.roles.State(viewer).Role
	if state, err := u.roles.Resolve(ctx, viewer); err != nil {
		logger.Log.Warn("role resolution failed, masking contact fields",
			"user_id", viewer.UserID, "error", err)
	} else {
		role = state.Role
	}

	if q.Experience == "" {
		q.Experience = directory.ExperienceAll
	}
	if q.Profession == "" {
		q.Profession = directory.All
	}

	// Search runs over unmasked values; only the returned page is masked.
	res := directory.Apply(records, q)
	items := make([]domain.Candidate, len(res.Items))
	for i, c := range res.Items {
		items[i] = c.Masked(role)
	}

	return &ChefPage{
		Items:       items,
		Total:       res.Total,
		TotalPages:  res.TotalPages,
		Page:        res.Page,
		PageSize:    directory.PageSize,
		Professions: directory.Professions(records),
		Filters: ChefFilters{
			Search:     q.Search,
			Experience: q.Experience,
			Profession: q.Profession,
		},
		ViewerRole: role,
		StaleError: staleErr,
	}, nil
}

func (u *directoryUsecase) Professions(ctx context.Context) ([]string, error) {
	records, _, err := u.load(ctx)
	if err != nil {
		return nil, err
	}
	return directory.Professions(records), nil
}
