package usecase

import (
	"context"
	"sync"
	"time"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"
)

type RoleUsecase interface {
	// Resolve looks the identity up in the user directory and caches the
	// result.
	Resolve(ctx context.Context, identity domain.Identity) (domain.RoleState, error)
	// State returns the cached resolution without any I/O.
	State(identity domain.Identity) domain.RoleState
	// Reset forgets the resolution, as on sign-out.
	Reset(identity domain.Identity)
	Users(ctx context.Context) ([]domain.User, error)
}

type roleUsecase struct {
	users  *store.UserStore
	maxAge time.Duration

	mu     sync.RWMutex
	states map[string]domain.RoleState
}

func NewRoleUsecase(users *store.UserStore, maxAge time.Duration) RoleUsecase {
	return &roleUsecase{
		users:  users,
		maxAge: maxAge,
		states: make(map[string]domain.RoleState),
	}
}

func identityKey(identity domain.Identity) string {
	if identity.UserID != "" {
		return identity.UserID
	}
	return identity.Email
}

func (u *roleUsecase) Resolve(ctx context.Context, identity domain.Identity) (domain.RoleState, error) {
	if err := u.users.EnsureFresh(ctx, u.maxAge); err != nil {
		return u.State(identity), err
	}

	state := ResolveRole(u.users.Items(), identity.Email)

	u.mu.Lock()
	u.states[identityKey(identity)] = state
	u.mu.Unlock()
	return state, nil
}

// ResolveRole derives the role state of email from the user list.
func ResolveRole(users []domain.User, email string) domain.RoleState {
	user, ok := domain.FindUserByEmail(users, email)
	if !ok {
		return domain.RoleState{Role: domain.RoleBasic, Chef: domain.ChefNo, Loaded: true}
	}
	return domain.RoleState{
		Role:        domain.NormalizeRole(string(user.Role)),
		Chef:        domain.NormalizeChef(string(user.Chef)),
		Provisioned: true,
		Loaded:      true,
	}
}

func (u *roleUsecase) State(identity domain.Identity) domain.RoleState {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.states[identityKey(identity)]
}

func (u *roleUsecase) Reset(identity domain.Identity) {
	u.mu.Lock()
	u.states[identityKey(identity)] = domain.RoleState{Role: domain.RoleBasic, Chef: domain.ChefNo}
	u.mu.Unlock()
}

func (u *roleUsecase) Users(ctx context.Context) ([]domain.User, error) {
	if err := u.users.EnsureFresh(ctx, u.maxAge); err != nil {
		return nil, err
	}
	return u.users.Items(), nil
}
