package usecase

import (
	"context"
	"fmt"
	"strings"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/pkg/clerk"
	"chefdhundo-backend/pkg/logger"
)

const (
	fallbackName  = "Unnamed User"
	fallbackEmail = "no-email"
)

type AccountUsecase interface {
	// HandleEvent provisions a user record for user.created and ignores
	// every other event type. It returns the created record, if any.
	HandleEvent(ctx context.Context, event *clerk.Event) (*domain.User, error)
}

type accountUsecase struct {
	repo  domain.UserRepository
	users *store.UserStore
}

func NewAccountUsecase(repo domain.UserRepository, users *store.UserStore) AccountUsecase {
	return &accountUsecase{repo: repo, users: users}
}

func (u *accountUsecase) HandleEvent(ctx context.Context, event *clerk.Event) (*domain.User, error) {
	if event.Type != clerk.EventUserCreated {
		logger.Log.Debug("ignoring identity event", "type", event.Type)
		return nil, nil
	}

	user := NewUserFromClerk(event.Data)
	if err := u.repo.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("provision user %s: %w", event.Data.ID, err)
	}

	if u.users != nil && u.users.Snapshot().Loaded {
		u.users.Append(user)
	}
	logger.Log.Info("user provisioned", "record_id", user.ID, "clerk_id", event.Data.ID)
	return &user, nil
}

// NewUserFromClerk builds the default user record for a new account.
func NewUserFromClerk(data clerk.UserData) domain.User {
	name := strings.TrimSpace(data.FirstName + " " + data.LastName)
	if name == "" {
		name = data.Username
	}
	if name == "" {
		name = fallbackName
	}

	email := fallbackEmail
	if len(data.EmailAddresses) > 0 && data.EmailAddresses[0].EmailAddress != "" {
		email = data.EmailAddresses[0].EmailAddress
	}

	return domain.User{
		Name:  name,
		Email: email,
		Role:  domain.RoleBasic,
		Chef:  domain.ChefNo,
	}
}
