// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User represents a system user account. Accounts are never hard-deleted;
// IsActive=false suspends the account and every session it owns.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string       `gorm:"type:text;not null"`
	Name         string       `gorm:"type:text;not null"`
	IsActive     bool         `gorm:"column:is_active;not null;default:true"`
	IsAdmin      bool         `gorm:"column:is_admin;not null;default:false"`
	MonthlyLimit int          `gorm:"column:monthly_limit;not null;default:100"`
	LastLoginAt  *time.Time   `gorm:"column:last_login_at"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session represents a persisted login session. Expiry is absolute; there is
// no sliding renewal and no sweep, expired rows are rejected lazily.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// UserView is returned to clients without exposing credentials.
type UserView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

func (u *User) View() UserView {
	return UserView{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}
