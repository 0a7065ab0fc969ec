package notion_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chefdhundo-backend/pkg/notion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryDatabaseFollowsCursor(t *testing.T) {
	var cursors []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/databases/db_1/query", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, notion.DefaultVersion, r.Header.Get("Notion-Version"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		cursor, _ := body["start_cursor"].(string)
		cursors = append(cursors, cursor)

		if cursor == "" {
			_, _ = w.Write([]byte(`{"results":[{"id":"p1","properties":{}}],"has_more":true,"next_cursor":"c2"}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"id":"p2","properties":{}}],"has_more":false,"next_cursor":null}`))
	}))
	defer srv.Close()

	client := notion.NewClient("secret", notion.WithBaseURL(srv.URL))
	pages, err := client.QueryDatabase(context.Background(), "db_1", nil)

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "p1", pages[0].ID)
	assert.Equal(t, "p2", pages[1].ID)
	assert.Equal(t, []string{"", "c2"}, cursors)
}

func TestUpdatePageSendsOnlyGivenProperties(t *testing.T) {
	var got map[string]map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/pages/rec_1", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"rec_1","properties":{}}`))
	}))
	defer srv.Close()

	client := notion.NewClient("secret", notion.WithBaseURL(srv.URL))
	page, err := client.UpdatePage(context.Background(), "rec_1", notion.Properties{
		"Mobile": notion.Phone("9999999999"),
	})

	require.NoError(t, err)
	assert.Equal(t, "rec_1", page.ID)
	require.Len(t, got["properties"], 1)
	assert.JSONEq(t, `{"phone_number":"9999999999"}`, string(got["properties"]["Mobile"]))
}

func TestNonSuccessStatusBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"object":"error","status":400,"code":"validation_error","message":"bad select"}`))
	}))
	defer srv.Close()

	client := notion.NewClient("secret", notion.WithBaseURL(srv.URL))
	_, err := client.CreatePage(context.Background(), "db_1", notion.Properties{"Name": notion.Title("x")})

	var apiErr *notion.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "validation_error", apiErr.Code)
}

func TestUnconfiguredClient(t *testing.T) {
	client := notion.NewClient("")
	_, err := client.QueryDatabase(context.Background(), "db_1", nil)
	assert.ErrorIs(t, err, notion.ErrNotConfigured)

	_, err = notion.NewClient("secret").QueryDatabase(context.Background(), "", nil)
	assert.ErrorIs(t, err, notion.ErrNotConfigured)
}
