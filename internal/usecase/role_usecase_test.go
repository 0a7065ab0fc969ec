package usecase_test

import (
	"context"
	"errors"
	"testing"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveRole(t *testing.T) {
	users := []domain.User{
		{ID: "u1", Email: "pro@x.com", Role: domain.RolePro, Chef: domain.ChefYes},
		{ID: "u2", Email: "blank@x.com"},
	}

	t.Run("Should take role and chef flag from the matching user", func(t *testing.T) {
		state := usecase.ResolveRole(users, "pro@x.com")
		assert.Equal(t, domain.RoleState{Role: domain.RolePro, Chef: domain.ChefYes, Provisioned: true, Loaded: true}, state)
	})

	t.Run("Should default blank stored values", func(t *testing.T) {
		state := usecase.ResolveRole(users, "blank@x.com")
		assert.Equal(t, domain.RoleBasic, state.Role)
		assert.Equal(t, domain.ChefNo, state.Chef)
		assert.True(t, state.Provisioned)
	})

	t.Run("Should resolve an unknown email to basic without provisioning", func(t *testing.T) {
		state := usecase.ResolveRole(users, "nobody@x.com")
		assert.Equal(t, domain.RoleState{Role: domain.RoleBasic, Chef: domain.ChefNo, Loaded: true}, state)
	})

	t.Run("Should match emails case-sensitively", func(t *testing.T) {
		state := usecase.ResolveRole(users, "PRO@x.com")
		assert.Equal(t, domain.RoleBasic, state.Role)
		assert.False(t, state.Provisioned)
	})
}

func TestRoleUsecase(t *testing.T) {
	ctx := context.Background()
	viewer := domain.Identity{UserID: "user_1", Email: "pro@x.com"}

	t.Run("Should cache the resolution and forget it on reset", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("List", mock.Anything).Return([]domain.User{{Email: "pro@x.com", Role: domain.RolePro}}, nil).Once()
		uc := usecase.NewRoleUsecase(store.NewUserStore(repo), 0)

		assert.Equal(t, domain.RoleState{}, uc.State(viewer))

		state, err := uc.Resolve(ctx, viewer)
		require.NoError(t, err)
		assert.Equal(t, domain.RolePro, state.Role)
		assert.Equal(t, state, uc.State(viewer))

		uc.Reset(viewer)
		reset := uc.State(viewer)
		assert.Equal(t, domain.RoleBasic, reset.Role)
		assert.Equal(t, domain.ChefNo, reset.Chef)
		assert.False(t, reset.Loaded)
		repo.AssertExpectations(t)
	})

	t.Run("Should return the error when the first load fails", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("List", mock.Anything).Return(nil, errors.New("notion down"))
		uc := usecase.NewRoleUsecase(store.NewUserStore(repo), 0)

		_, err := uc.Resolve(ctx, viewer)
		assert.Error(t, err)
		assert.Equal(t, domain.RoleState{}, uc.State(viewer))
	})
}
