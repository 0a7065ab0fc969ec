package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/notion"
	"chefdhundo-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validSubmission() *domain.ResumeSubmission {
	years := 0
	return &domain.ResumeSubmission{
		Name:                 "Ravi Kumar",
		Email:                "ravi@example.com",
		Mobile:               "98765 43210",
		Experience:           "Tandoor section, 4 years",
		JobType:              domain.JobTypeFullTime,
		Cuisines:             "North Indian",
		TotalExperienceYears: &years,
		PreferredLocation:    "Pune",
		CandidateConsent:     true,
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	return appErr.Code
}

func TestSubmitResume(t *testing.T) {
	ctx := context.Background()

	t.Run("Should apply form defaults and create the record", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Candidate")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Candidate).ID = "rec_new" }).
			Return(nil)
		uc := usecase.NewResumeUsecase(repo, store.NewCandidateStore(repo), validation.New(), 0)

		c, err := uc.Submit(ctx, validSubmission())

		require.NoError(t, err)
		assert.Equal(t, "rec_new", c.ID)
		assert.Equal(t, domain.BusinessTypeAny, c.BusinessType)
		assert.Equal(t, domain.JoiningImmediate, c.JoiningType)
		assert.Equal(t, domain.TrainingYes, c.ReadyForTraining)
		assert.Equal(t, 0, c.TotalExperienceYears)
	})

	t.Run("Should reject invalid submissions before calling the store", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewResumeUsecase(repo, store.NewCandidateStore(repo), validation.New(), 0)

		cases := map[string]func(s *domain.ResumeSubmission){
			"missing consent":    func(s *domain.ResumeSubmission) { s.CandidateConsent = false },
			"missing experience": func(s *domain.ResumeSubmission) { s.TotalExperienceYears = nil },
			"bad job type":       func(s *domain.ResumeSubmission) { s.JobType = "gig" },
			"bad phone":          func(s *domain.ResumeSubmission) { s.Mobile = "12ab" },
			"bad email":          func(s *domain.ResumeSubmission) { s.Email = "ravi" },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				s := validSubmission()
				mutate(s)

				_, err := uc.Submit(ctx, s)

				assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
			})
		}
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should append to a loaded store", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("List", mock.Anything).Return([]domain.Candidate{{ID: "rec_1"}}, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		candidates := store.NewCandidateStore(repo)
		require.NoError(t, candidates.Fetch(ctx))
		uc := usecase.NewResumeUsecase(repo, candidates, validation.New(), 0)

		_, err := uc.Submit(ctx, validSubmission())

		require.NoError(t, err)
		assert.Len(t, candidates.Items(), 2)
	})

	t.Run("Should report missing credentials as a server error", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		repo.On("Create", mock.Anything, mock.Anything).Return(notion.ErrNotConfigured)
		uc := usecase.NewResumeUsecase(repo, store.NewCandidateStore(repo), validation.New(), 0)

		_, err := uc.Submit(ctx, validSubmission())

		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})
}

func TestUpdateOwnResume(t *testing.T) {
	ctx := context.Background()
	records := []domain.Candidate{
		{ID: "rec_1", Email: "ravi@example.com", Mobile: "9876543210", Location: "Pune"},
		{ID: "rec_2", Email: "anita@example.com"},
	}
	newSetup := func() (*MockCandidateRepo, *store.CandidateStore, usecase.ResumeUsecase) {
		repo := new(MockCandidateRepo)
		repo.On("List", mock.Anything).Return(records, nil)
		candidates := store.NewCandidateStore(repo)
		return repo, candidates, usecase.NewResumeUsecase(repo, candidates, validation.New(), 0)
	}
	location := "Mumbai"

	t.Run("Should return the own record unmasked", func(t *testing.T) {
		_, _, uc := newSetup()

		c, err := uc.GetOwn(ctx, "ravi@example.com")

		require.NoError(t, err)
		assert.Equal(t, "9876543210", c.Mobile)
	})

	t.Run("Should report a missing own record", func(t *testing.T) {
		_, _, uc := newSetup()

		_, err := uc.GetOwn(ctx, "Ravi@example.com")

		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("Should forbid updating another account's record", func(t *testing.T) {
		repo, _, uc := newSetup()

		_, err := uc.UpdateOwn(ctx, "ravi@example.com", "rec_2", domain.CandidatePatch{Location: &location})

		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
		assert.ErrorIs(t, err, usecase.ErrNotOwner)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject an empty patch", func(t *testing.T) {
		_, _, uc := newSetup()

		_, err := uc.UpdateOwn(ctx, "ravi@example.com", "rec_1", domain.CandidatePatch{})

		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("Should merge the patch into the cached record", func(t *testing.T) {
		repo, candidates, uc := newSetup()
		repo.On("Update", mock.Anything, "rec_1", domain.CandidatePatch{Location: &location}).Return(nil)

		c, err := uc.UpdateOwn(ctx, "ravi@example.com", "rec_1", domain.CandidatePatch{Location: &location})

		require.NoError(t, err)
		assert.Equal(t, "Mumbai", c.Location)
		assert.Equal(t, "Mumbai", candidates.Items()[0].Location)
		repo.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("Should leave the cached record untouched when the store rejects the patch", func(t *testing.T) {
		repo, candidates, uc := newSetup()
		repo.On("Update", mock.Anything, "rec_1", mock.Anything).Return(errors.New("conflict"))

		_, err := uc.UpdateOwn(ctx, "ravi@example.com", "rec_1", domain.CandidatePatch{Location: &location})

		assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
		assert.Equal(t, "Pune", candidates.Items()[0].Location)
	})
}
