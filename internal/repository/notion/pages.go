// Package notion maps the Users and Resumes databases onto domain records.
package notion

import (
	"context"

	"chefdhundo-backend/pkg/notion"
)

// Pages is the part of the Notion client the repositories use.
type Pages interface {
	QueryDatabase(ctx context.Context, databaseID string, filter interface{}) ([]notion.Page, error)
	CreatePage(ctx context.Context, databaseID string, props notion.Properties) (*notion.Page, error)
	UpdatePage(ctx context.Context, pageID string, props notion.Properties) (*notion.Page, error)
}

func optionalNumber(n int) *float64 {
	if n == 0 {
		return nil
	}
	f := float64(n)
	return &f
}
