package usecase

import (
	"context"
	"fmt"
	"time"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// CommitResult reports the outcome of CommitEdit. Record is nil when the
// commit behaved as a cancel.
type CommitResult struct {
	Committed bool              `json:"committed"`
	Record    *domain.Candidate `json:"record,omitempty"`
}

// EditUsecase drives field-by-field edits of the owner's own record.
type EditUsecase interface {
	Session(ctx context.Context, owner string) (*domain.EditSession, error)
	BeginEdit(ctx context.Context, owner, field string, value interface{}) (*domain.EditSession, error)
	CancelEdit(ctx context.Context, owner string) error
	CommitEdit(ctx context.Context, owner, field string) (*CommitResult, error)
}

type editUsecase struct {
	pending    domain.PendingEditRepository
	candidates *store.CandidateStore
	validate   *validator.Validate
	maxAge     time.Duration
	now        func() time.Time
}

func NewEditUsecase(pending domain.PendingEditRepository, candidates *store.CandidateStore, validate *validator.Validate, maxAge time.Duration) EditUsecase {
	return &editUsecase{
		pending:    pending,
		candidates: candidates,
		validate:   validate,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

func (u *editUsecase) Session(ctx context.Context, owner string) (*domain.EditSession, error) {
	edit, err := u.pending.Get(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load pending edit: %w", err)
	}
	if edit == nil {
		return &domain.EditSession{}, nil
	}
	return &domain.EditSession{Editing: true, Field: edit.Field, Value: edit.Value}, nil
}

// BeginEdit replaces any pending edit with one for field.
func (u *editUsecase) BeginEdit(ctx context.Context, owner, field string, value interface{}) (*domain.EditSession, error) {
	if _, err := domain.PatchForField(field, value); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	edit := domain.PendingEdit{Field: field, Value: value, StartedAt: u.now()}
	if err := u.pending.Save(ctx, owner, edit); err != nil {
		return nil, fmt.Errorf("save pending edit: %w", err)
	}
	return &domain.EditSession{Editing: true, Field: field, Value: value}, nil
}

func (u *editUsecase) CancelEdit(ctx context.Context, owner string) error {
	if err := u.pending.Delete(ctx, owner); err != nil {
		return fmt.Errorf("discard pending edit: %w", err)
	}
	return nil
}

// CommitEdit sends the pending value of field as a one-field patch. With no
// pending value for field it behaves as CancelEdit. On any failure the
// pending value is kept for a retry.
func (u *editUsecase) CommitEdit(ctx context.Context, owner, field string) (*CommitResult, error) {
	edit, err := u.pending.Get(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load pending edit: %w", err)
	}
	if edit == nil || edit.Field != field {
		if err := u.CancelEdit(ctx, owner); err != nil {
			return nil, err
		}
		return &CommitResult{}, nil
	}

	patch, err := domain.PatchForField(edit.Field, edit.Value)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.Validation(validation.FormatValidationErrors(err))
	}

	own, err := ownRecord(ctx, u.candidates, u.maxAge, owner)
	if err != nil {
		return nil, err
	}

	updated, err := applyPatch(ctx, u.candidates, own, patch)
	if err != nil {
		return nil, err
	}

	if err := u.pending.Delete(ctx, owner); err != nil {
		return nil, fmt.Errorf("clear pending edit: %w", err)
	}
	return &CommitResult{Committed: true, Record: updated}, nil
}
