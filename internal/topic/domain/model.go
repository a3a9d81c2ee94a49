// Package domain contains the suggested-topic types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Status is the topic lifecycle state. Topics start as new and move only by
// explicit user action.
type Status string

const (
	StatusNew       Status = "new"
	StatusReviewed  Status = "reviewed"
	StatusDrafted   Status = "drafted"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusReviewed, StatusDrafted, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

// Topic is a monitored content suggestion. Sources keeps the provider's
// shape as-is; it is not validated beyond being JSON.
type Topic struct {
	ID             snowflake.ID                `gorm:"primaryKey"`
	UserID         snowflake.ID                `gorm:"index;not null"`
	Title          string                      `gorm:"type:text;not null"`
	Description    string                      `gorm:"type:text"`
	RelevanceScore int                         `gorm:"not null"`
	Sources        datatypes.JSON              `gorm:"not null"`
	KeyPoints      datatypes.JSONSlice[string] `gorm:"column:key_points;not null"`
	SuggestedAngle string                      `gorm:"column:suggested_angle;type:text"`
	Status         Status                      `gorm:"type:text;not null;default:'new';index"`
	CreatedAt      time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

// TableName sets the database table name.
func (Topic) TableName() string { return "topics" }
