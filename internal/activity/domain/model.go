// Package domain contains the activity-log types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Event is one append-only audit record. Rows are never updated or deleted.
type Event struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	UserID    snowflake.ID      `gorm:"index;not null"`
	Action    string            `gorm:"type:text;not null"`
	Detail    datatypes.JSONMap `gorm:"column:detail"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

// TableName sets the database table name.
func (Event) TableName() string { return "activity_events" }

// Entry is an admin-facing row with the actor's email joined in.
type Entry struct {
	ID        snowflake.ID      `json:"id"`
	UserID    snowflake.ID      `json:"user_id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	Action    string            `json:"action"`
	Detail    datatypes.JSONMap `json:"detail"`
	CreatedAt time.Time         `json:"created_at"`
}
