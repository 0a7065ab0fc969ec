package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"chefdhundo-backend/internal/cli"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCandidates struct{ items []domain.Candidate }

func (f *fakeCandidates) List(context.Context) ([]domain.Candidate, error) { return f.items, nil }
func (f *fakeCandidates) Create(context.Context, *domain.Candidate) error  { return nil }
func (f *fakeCandidates) Update(context.Context, string, domain.CandidatePatch) error {
	return nil
}
func (f *fakeCandidates) FindByEmail(context.Context, string) (*domain.Candidate, error) {
	return nil, nil
}

type fakeUsers struct{ items []domain.User }

func (f *fakeUsers) List(context.Context) ([]domain.User, error) { return f.items, nil }
func (f *fakeUsers) Create(context.Context, *domain.User) error  { return nil }
func (f *fakeUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, nil
}

func run(t *testing.T, open cli.OpenFunc, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChefctl(t *testing.T) {
	sources := &cli.Sources{
		Candidates: &fakeCandidates{items: []domain.Candidate{
			{ID: "p1", Name: "Ravi Kumar", Email: "ravi@example.com", Mobile: "9876543210", JobType: "full-time", Cuisines: "North Indian", TotalExperienceYears: 6},
			{ID: "p2", Name: "Asha", Email: "asha@example.com", Mobile: "9123456780", JobType: "contract", Cuisines: "Bakery", TotalExperienceYears: 1},
		}},
		Users: &fakeUsers{items: []domain.User{
			{ID: "u1", Name: "Meera", Email: "meera@example.com", Role: domain.RolePro, Chef: domain.ChefNo},
		}},
	}
	open := func(*cli.Config) (*cli.Sources, error) { return sources, nil }

	t.Run("Should mask contact fields for the basic role", func(t *testing.T) {
		out, err := run(t, open, "chefs")
		require.NoError(t, err)

		var page usecase.ChefPage
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, domain.RoleBasic, page.ViewerRole)
		for _, c := range page.Items {
			assert.Contains(t, c.Email, "***@example.com")
			assert.Contains(t, c.Mobile, "********")
		}
	})

	t.Run("Should show contact fields for the pro role and apply filters", func(t *testing.T) {
		out, err := run(t, open, "chefs", "--role", "pro", "--search", "ASHA")
		require.NoError(t, err)

		var page usecase.ChefPage
		require.NoError(t, json.Unmarshal([]byte(out), &page))
		require.Len(t, page.Items, 1)
		assert.Equal(t, "asha@example.com", page.Items[0].Email)
		assert.Equal(t, "ASHA", page.Filters.Search)
	})

	t.Run("Should reject an unknown experience bucket", func(t *testing.T) {
		_, err := run(t, open, "chefs", "--experience", "legendary")
		assert.Error(t, err)
	})

	t.Run("Should list professions", func(t *testing.T) {
		out, err := run(t, open, "professions")
		require.NoError(t, err)

		var professions []string
		require.NoError(t, json.Unmarshal([]byte(out), &professions))
		assert.ElementsMatch(t, []string{"full-time", "contract"}, professions)
	})

	t.Run("Should resolve the role of a known email", func(t *testing.T) {
		out, err := run(t, open, "users", "--email", "meera@example.com")
		require.NoError(t, err)

		var state domain.RoleState
		require.NoError(t, json.Unmarshal([]byte(out), &state))
		assert.Equal(t, domain.RolePro, state.Role)
		assert.True(t, state.Provisioned)
	})

	t.Run("Should surface open failures", func(t *testing.T) {
		failing := func(*cli.Config) (*cli.Sources, error) { return nil, errors.New("boom") }
		_, err := run(t, failing, "users")
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("Should print the version without opening sources", func(t *testing.T) {
		failing := func(*cli.Config) (*cli.Sources, error) { return nil, errors.New("boom") }
		out, err := run(t, failing, "version")
		require.NoError(t, err)
		assert.Contains(t, out, "chefctl version")
	})
}
