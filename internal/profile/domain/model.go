// Package domain contains the topical-profile types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Cadence is the configured monitoring frequency.
type Cadence string

const (
	CadenceDaily    Cadence = "daily"
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
)

func (c Cadence) Valid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceBiweekly:
		return true
	default:
		return false
	}
}

// Profile holds one user's topical preferences. One row per user.
type Profile struct {
	UserID         snowflake.ID                 `gorm:"primaryKey;column:user_id"`
	FocusAreas     datatypes.JSONSlice[string]  `gorm:"column:focus_areas;not null"`
	TargetAudience string                       `gorm:"column:target_audience;type:text"`
	ContentGoals   datatypes.JSONSlice[string]  `gorm:"column:content_goals;not null"`
	Tone           string                       `gorm:"column:tone;type:text"`
	Cadence        Cadence                      `gorm:"column:monitoring_frequency;type:text;not null;default:'weekly'"`
	UpdatedAt      time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "user_profiles" }

// Default returns the profile assigned at signup.
func Default(userID snowflake.ID) *Profile {
	return &Profile{
		UserID: userID,
		FocusAreas: datatypes.NewJSONSlice([]string{
			"UK venture capital landscape",
			"Scaling businesses from Series A to IPO",
			"European vs US IPO markets",
			"Deeptech startups globally",
		}),
		TargetAudience: "Founders and leaders of scaling businesses",
		ContentGoals: datatypes.NewJSONSlice([]string{
			"Provide actionable insights",
			"Share data-driven analysis",
			"Highlight market trends",
		}),
		Tone:    "Professional but accessible, data-driven",
		Cadence: CadenceWeekly,
	}
}
