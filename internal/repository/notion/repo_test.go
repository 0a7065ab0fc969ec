package notion_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"chefdhundo-backend/internal/domain"
	repo "chefdhundo-backend/internal/repository/notion"
	"chefdhundo-backend/pkg/notion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPages struct {
	mock.Mock
}

func (m *MockPages) QueryDatabase(ctx context.Context, databaseID string, filter interface{}) ([]notion.Page, error) {
	args := m.Called(ctx, databaseID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notion.Page), args.Error(1)
}

func (m *MockPages) CreatePage(ctx context.Context, databaseID string, props notion.Properties) (*notion.Page, error) {
	args := m.Called(ctx, databaseID, props)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notion.Page), args.Error(1)
}

func (m *MockPages) UpdatePage(ctx context.Context, pageID string, props notion.Properties) (*notion.Page, error) {
	args := m.Called(ctx, pageID, props)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notion.Page), args.Error(1)
}

func pagesFromJSON(t *testing.T, raw string) []notion.Page {
	t.Helper()
	var pages []notion.Page
	require.NoError(t, json.Unmarshal([]byte(raw), &pages))
	return pages
}

func TestCandidateRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Should decode resume pages with defaults for missing properties", func(t *testing.T) {
		pages := new(MockPages)
		pages.On("QueryDatabase", ctx, "resumes", nil).Return(pagesFromJSON(t, `[
			{"id": "rec_1", "properties": {
				"Name": {"type": "title", "title": [{"plain_text": "Ravi"}]},
				"Email": {"type": "email", "email": "ravi@example.com"},
				"Mobile": {"type": "phone_number", "phone_number": "9876543210"},
				"JobType": {"type": "select", "select": {"name": "contract"}},
				"Cuisines": {"type": "rich_text", "rich_text": [{"plain_text": "Mughlai, "}, {"plain_text": "Chinese"}]},
				"ProbationPeriod": {"type": "checkbox", "checkbox": true}
			}},
			{"id": "rec_2", "properties": {}}
		]`), nil)

		r := repo.NewCandidateRepository(pages, "resumes")
		got, err := r.List(ctx)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Ravi", got[0].Name)
		assert.Equal(t, "9876543210", got[0].Mobile)
		assert.Equal(t, "Mughlai, Chinese", got[0].Cuisines)
		assert.Equal(t, "contract", got[0].JobType)
		assert.Equal(t, 0, got[0].TotalExperienceYears)
		assert.True(t, got[0].ProbationPeriod)
		assert.Equal(t, domain.Candidate{ID: "rec_2"}, got[1])
	})

	t.Run("Should send only the patched properties", func(t *testing.T) {
		pages := new(MockPages)
		mobile := "9999999999"
		zero := 0
		pages.On("UpdatePage", ctx, "rec_1", mock.AnythingOfType("notion.Properties")).
			Return(&notion.Page{ID: "rec_1"}, nil)

		r := repo.NewCandidateRepository(pages, "resumes")
		err := r.Update(ctx, "rec_1", domain.CandidatePatch{Mobile: &mobile, Age: &zero})

		require.NoError(t, err)
		props := pages.Calls[0].Arguments.Get(2).(notion.Properties)
		require.Len(t, props, 2)
		body, err := json.Marshal(props)
		require.NoError(t, err)
		assert.JSONEq(t, `{"Mobile":{"phone_number":"9999999999"},"Age":{"number":null}}`, string(body))
	})

	t.Run("Should set the id assigned by Notion on create", func(t *testing.T) {
		pages := new(MockPages)
		pages.On("CreatePage", ctx, "resumes", mock.AnythingOfType("notion.Properties")).
			Return(&notion.Page{ID: "rec_new"}, nil)

		c := &domain.Candidate{Name: "Ravi", Email: "ravi@example.com", JobType: "full-time", TotalExperienceYears: 4}
		require.NoError(t, repo.NewCandidateRepository(pages, "resumes").Create(ctx, c))

		assert.Equal(t, "rec_new", c.ID)
		props := pages.Calls[0].Arguments.Get(2).(notion.Properties)
		assert.Equal(t, 4, props.Int("TotalExperienceYears"))
		assert.Equal(t, "full-time", props.Text("JobType", notion.KindSelect))
	})

	t.Run("Should match email exactly", func(t *testing.T) {
		pages := new(MockPages)
		pages.On("QueryDatabase", ctx, "resumes", nil).Return(pagesFromJSON(t, `[
			{"id": "upper", "properties": {"Email": {"type": "email", "email": "A@x.com"}}},
			{"id": "lower", "properties": {"Email": {"type": "email", "email": "a@x.com"}}}
		]`), nil)
		r := repo.NewCandidateRepository(pages, "resumes")

		c, err := r.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "lower", c.ID)

		_, err = r.FindByEmail(ctx, "b@x.com")
		assert.ErrorIs(t, err, domain.ErrCandidateNotFound)
	})

	t.Run("Should wrap store failures", func(t *testing.T) {
		pages := new(MockPages)
		apiErr := &notion.APIError{Status: 502}
		pages.On("QueryDatabase", ctx, "resumes", nil).Return(nil, apiErr)

		_, err := repo.NewCandidateRepository(pages, "resumes").List(ctx)

		var got *notion.APIError
		require.True(t, errors.As(err, &got))
		assert.Equal(t, 502, got.Status)
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Should default role to basic and chef to no", func(t *testing.T) {
		pages := new(MockPages)
		pages.On("QueryDatabase", ctx, "users", nil).Return(pagesFromJSON(t, `[
			{"id": "u1", "properties": {
				"name": {"type": "title", "title": [{"plain_text": "Asha"}]},
				"email": {"type": "email", "email": "asha@example.com"},
				"role": {"type": "select", "select": {"name": "pro"}},
				"chef": {"type": "select", "select": {"name": "yes"}}
			}},
			{"id": "u2", "properties": {"email": {"type": "email", "email": "b@example.com"}, "role": {"type": "select", "select": null}}}
		]`), nil)

		users, err := repo.NewUserRepository(pages, "users").List(ctx)

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, domain.RolePro, users[0].Role)
		assert.Equal(t, domain.ChefYes, users[0].Chef)
		assert.Equal(t, domain.RoleBasic, users[1].Role)
		assert.Equal(t, domain.ChefNo, users[1].Chef)
	})

	t.Run("Should write lower case property names on create", func(t *testing.T) {
		pages := new(MockPages)
		pages.On("CreatePage", ctx, "users", mock.AnythingOfType("notion.Properties")).
			Return(&notion.Page{ID: "u9"}, nil)

		u := &domain.User{Name: "Unnamed User", Email: "no-email", Role: domain.RoleBasic, Chef: domain.ChefNo}
		require.NoError(t, repo.NewUserRepository(pages, "users").Create(ctx, u))

		assert.Equal(t, "u9", u.ID)
		props := pages.Calls[0].Arguments.Get(2).(notion.Properties)
		assert.Equal(t, "Unnamed User", props.Text("name", notion.KindTitle))
		assert.Equal(t, "basic", props.Text("role", notion.KindSelect))
		assert.Equal(t, "no", props.Text("chef", notion.KindSelect))
	})
}
