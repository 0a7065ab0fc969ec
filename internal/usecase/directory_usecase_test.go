package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"chefdhundo-backend/internal/directory"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var chefs = []domain.Candidate{
	{ID: "rec_1", Name: "Ravi", Email: "ravi@example.com", Mobile: "9876543210", JobType: domain.JobTypeFullTime, TotalExperienceYears: 4},
	{ID: "rec_2", Name: "Anita", Email: "anita@chefs.in", Mobile: "9123456780", JobType: domain.JobTypeContract, TotalExperienceYears: 12},
}

func newDirectory(t *testing.T, users []domain.User, usersErr error) usecase.DirectoryUsecase {
	t.Helper()
	candidates := new(MockCandidateRepo)
	candidates.On("List", mock.Anything).Return(chefs, nil)

	userRepo := new(MockUserRepo)
	if usersErr != nil {
		userRepo.On("List", mock.Anything).Return(nil, usersErr)
	} else {
		userRepo.On("List", mock.Anything).Return(users, nil)
	}

	roles := usecase.NewRoleUsecase(store.NewUserStore(userRepo), 0)
	return usecase.NewDirectoryUsecase(store.NewCandidateStore(candidates), roles, 0)
}

func TestListChefs(t *testing.T) {
	ctx := context.Background()
	viewer := domain.Identity{UserID: "user_1", Email: "viewer@x.com"}

	t.Run("Should mask contact fields for basic viewers", func(t *testing.T) {
		uc := newDirectory(t, nil, nil)

		page, err := uc.ListChefs(ctx, viewer, directory.Query{Page: 1})

		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "r***@example.com", page.Items[0].Email)
		assert.Equal(t, "9********0", page.Items[0].Mobile)
		assert.Equal(t, domain.RoleBasic, page.ViewerRole)
		assert.Equal(t, directory.ExperienceAll, page.Filters.Experience)
		assert.Equal(t, directory.All, page.Filters.Profession)
	})

	t.Run("Should show contact fields to pro viewers", func(t *testing.T) {
		uc := newDirectory(t, []domain.User{{Email: "viewer@x.com", Role: domain.RolePro}}, nil)

		page, err := uc.ListChefs(ctx, viewer, directory.Query{Page: 1})

		require.NoError(t, err)
		assert.Equal(t, "ravi@example.com", page.Items[0].Email)
		assert.Equal(t, "9876543210", page.Items[0].Mobile)
	})

	t.Run("Should mask when the role cannot be resolved", func(t *testing.T) {
		uc := newDirectory(t, nil, errors.New("users unavailable"))

		page, err := uc.ListChefs(ctx, viewer, directory.Query{Page: 1})

		require.NoError(t, err)
		assert.Equal(t, "a***@chefs.in", page.Items[1].Email)
	})

	t.Run("Should search unmasked values even for basic viewers", func(t *testing.T) {
		uc := newDirectory(t, nil, nil)

		page, err := uc.ListChefs(ctx, viewer, directory.Query{Search: "91234", Page: 1})

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "rec_2", page.Items[0].ID)
		assert.Equal(t, "9********0", page.Items[0].Mobile)
	})

	t.Run("Should report a gateway error when chefs cannot be loaded", func(t *testing.T) {
		candidates := new(MockCandidateRepo)
		candidates.On("List", mock.Anything).Return(nil, errors.New("timeout"))
		roles := usecase.NewRoleUsecase(store.NewUserStore(new(MockUserRepo)), 0)
		uc := usecase.NewDirectoryUsecase(store.NewCandidateStore(candidates), roles, 0)

		_, err := uc.ListChefs(ctx, viewer, directory.Query{Page: 1})

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, appErr.Code)
	})
}

func TestProfessionsFromDirectory(t *testing.T) {
	uc := newDirectory(t, nil, nil)

	got, err := uc.Professions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{domain.JobTypeContract, domain.JobTypeFullTime}, got)
}
