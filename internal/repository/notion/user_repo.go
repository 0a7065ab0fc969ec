package notion

import (
	"context"
	"fmt"

	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/pkg/notion"
)

// Users database property names. They are lower case, unlike the resume
// database.
const (
	propUserName  = "name"
	propUserEmail = "email"
	propUserRole  = "role"
	propUserChef  = "chef"
)

type userRepo struct {
	pages      Pages
	databaseID string
}

func NewUserRepository(pages Pages, databaseID string) domain.UserRepository {
	return &userRepo{pages: pages, databaseID: databaseID}
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	pages, err := r.pages.QueryDatabase(ctx, r.databaseID, nil)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	out := make([]domain.User, 0, len(pages))
	for i := range pages {
		props := pages[i].Properties
		out = append(out, domain.User{
			ID:        pages[i].ID,
			Name:      props.Text(propUserName, notion.KindTitle),
			Email:     props.Text(propUserEmail, notion.KindEmail),
			Role:      domain.NormalizeRole(props.Text(propUserRole, notion.KindSelect)),
			Chef:      domain.NormalizeChef(props.Text(propUserChef, notion.KindSelect)),
			CreatedAt: pages[i].CreatedTime,
		})
	}
	return out, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	page, err := r.pages.CreatePage(ctx, r.databaseID, notion.Properties{
		propUserName:  notion.Title(user.Name),
		propUserEmail: notion.Email(user.Email),
		propUserRole:  notion.Select(string(user.Role)),
		propUserChef:  notion.Select(string(user.Chef)),
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = page.ID
	user.CreatedAt = page.CreatedTime
	return nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := domain.FindUserByEmail(all, email)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
