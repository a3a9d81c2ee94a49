// Package domain contains the draft-post types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Post is one saved draft version. Saves append; rows are never edited in
// place, so the full version history stays intact.
type Post struct {
	ID        snowflake.ID  `gorm:"primaryKey"`
	UserID    snowflake.ID  `gorm:"index;not null"`
	TopicID   *snowflake.ID `gorm:"index"`
	Content   string        `gorm:"type:text;not null"`
	Version   int           `gorm:"not null;default:1"`
	Status    string        `gorm:"type:text;not null;default:'draft'"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Post) TableName() string { return "posts" }

const StatusDraft = "draft"
