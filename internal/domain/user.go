package domain

import (
	"context"
	"time"
)

// Role is the subscription tier of an account.
type Role string

const (
	RoleBasic Role = "basic"
	RolePro   Role = "pro"
)

// ChefFlag marks whether an account is expected to own a resume.
type ChefFlag string

const (
	ChefYes ChefFlag = "yes"
	ChefNo  ChefFlag = "no"
)

// User is one row of the users collection.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Chef      ChefFlag  `json:"chef"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeRole maps an empty or unknown stored value to basic.
func NormalizeRole(s string) Role {
	if Role(s) == RolePro {
		return RolePro
	}
	return RoleBasic
}

// NormalizeChef maps an empty or unknown stored value to no.
func NormalizeChef(s string) ChefFlag {
	if ChefFlag(s) == ChefYes {
		return ChefYes
	}
	return ChefNo
}

// FindUserByEmail returns the first user whose email equals email exactly
// (case-sensitive). Empty email never matches.
func FindUserByEmail(users []User, email string) (*User, bool) {
	if email == "" {
		return nil, false
	}
	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u, true
		}
	}
	return nil, false
}

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// Identity is the verified caller as delivered by the identity provider.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

// RoleState is the resolved role of an identity. Role is empty while the
// lookup has not run yet and must be treated as unknown.
type RoleState struct {
	Role        Role     `json:"role"`
	Chef        ChefFlag `json:"chef"`
	Provisioned bool     `json:"provisioned"`
	Loaded      bool     `json:"loaded"`
}
