package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/logger"
	"chefdhundo-backend/pkg/notion"
	"chefdhundo-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var ErrNotOwner = errors.New("record belongs to another account")

type ResumeUsecase interface {
	Submit(ctx context.Context, submission *domain.ResumeSubmission) (*domain.Candidate, error)
	// GetOwn returns the caller's own record unmasked.
	GetOwn(ctx context.Context, email string) (*domain.Candidate, error)
	UpdateOwn(ctx context.Context, email, id string, patch domain.CandidatePatch) (*domain.Candidate, error)
}

type resumeUsecase struct {
	repo       domain.CandidateRepository
	candidates *store.CandidateStore
	validate   *validator.Validate
	maxAge     time.Duration
}

func NewResumeUsecase(repo domain.CandidateRepository, candidates *store.CandidateStore, validate *validator.Validate, maxAge time.Duration) ResumeUsecase {
	return &resumeUsecase{repo: repo, candidates: candidates, validate: validate, maxAge: maxAge}
}

func (u *resumeUsecase) Submit(ctx context.Context, submission *domain.ResumeSubmission) (*domain.Candidate, error) {
	submission.ApplyDefaults()
	if err := u.validate.Struct(submission); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	candidate := submission.Candidate()
	if err := u.repo.Create(ctx, candidate); err != nil {
		return nil, remoteError("Failed to save resume", err)
	}

	// The next fetch replaces the list anyway; appending only makes the new
	// record visible on the dashboard right away.
	if u.candidates.Snapshot().Loaded {
		u.candidates.Append(*candidate)
	}
	logger.Log.Info("resume submitted", "record_id", candidate.ID, "job_type", candidate.JobType)
	return candidate, nil
}

func (u *resumeUsecase) GetOwn(ctx context.Context, email string) (*domain.Candidate, error) {
	return ownRecord(ctx, u.candidates, u.maxAge, email)
}

func (u *resumeUsecase) UpdateOwn(ctx context.Context, email, id string, patch domain.CandidatePatch) (*domain.Candidate, error) {
	if patch.IsEmpty() {
		return nil, apperror.BadRequest("No fields to update")
	}
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	own, err := ownRecord(ctx, u.candidates, u.maxAge, email)
	if err != nil {
		return nil, err
	}
	if own.ID != id {
		return nil, apperror.New(http.StatusForbidden, "You can only update your own resume", ErrNotOwner)
	}

	return applyPatch(ctx, u.candidates, own, patch)
}

// ownRecord finds the caller's record through the email join.
func ownRecord(ctx context.Context, candidates *store.CandidateStore, maxAge time.Duration, email string) (*domain.Candidate, error) {
	if err := candidates.EnsureFresh(ctx, maxAge); err != nil {
		return nil, remoteError("Failed to fetch resumes", err)
	}
	own, ok := domain.FindCandidateByEmail(candidates.Items(), email)
	if !ok {
		return nil, apperror.NotFound("Resume not found")
	}
	return own, nil
}

// applyPatch forwards patch through the store and merges it locally on
// success. On failure the cached record is untouched.
func applyPatch(ctx context.Context, candidates *store.CandidateStore, own *domain.Candidate, patch domain.CandidatePatch) (*domain.Candidate, error) {
	if err := candidates.Update(ctx, own.ID, patch); err != nil {
		return nil, remoteError("Failed to update resume", err)
	}

	id := own.ID
	candidates.Merge(func(c domain.Candidate) bool { return c.ID == id }, patch.Apply)

	updated := *own
	patch.Apply(&updated)
	return &updated, nil
}

// remoteError maps a document store failure onto an HTTP-like status.
func remoteError(message string, err error) error {
	if errors.Is(err, notion.ErrNotConfigured) {
		return apperror.New(http.StatusInternalServerError, "Server configuration error", err)
	}
	var apiErr *notion.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return apperror.NotFound("Resume not found")
	}
	return apperror.BadGateway(message, err)
}
