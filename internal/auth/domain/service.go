package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// CreateUser registers a new account. The first account ever created is
	// promoted to admin.
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	// Authenticate resolves a bearer token to its user. Suspended accounts
	// fail with ErrAccountSuspended even while the session itself is valid.
	Authenticate(ctx context.Context, rawToken string) (*User, error)
	// IssueSession creates a session for an already-verified user.
	IssueSession(ctx context.Context, userID snowflake.ID) (*LoginResult, error)

	ListUsers(ctx context.Context) ([]User, error)
	ListActiveUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id snowflake.ID) (*User, error)
	// UpdateUser applies only the fields present in the patch.
	UpdateUser(ctx context.Context, id snowflake.ID, patch UserPatch) error
}

type CreateUserRequest struct {
	Email    string
	Password string
	Name     string
}

type LoginRequest struct {
	Email    string
	Password string
}

type LoginResult struct {
	User      *User
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}

// UserPatch carries admin-editable fields; nil means keep the prior value.
type UserPatch struct {
	IsActive     *bool
	MonthlyLimit *int
	IsAdmin      *bool
}
