// Package domain contains usage-metering types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Action identifies the costed operation an event meters.
type Action string

const (
	ActionMonitor    Action = "monitor"
	ActionBrainstorm Action = "brainstorm"
	ActionScheduled  Action = "scheduled_monitor"
)

// Cost returns the per-call cost estimate in USD.
func (a Action) Cost() float64 {
	switch a {
	case ActionBrainstorm:
		return 0.02
	default:
		return 0.03
	}
}

// UsageEvent records one completed costed operation.
type UsageEvent struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"index;not null"`
	Action    Action       `gorm:"type:text;not null"`
	Cost      float64      `gorm:"not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

// TableName sets the database table name.
func (UsageEvent) TableName() string { return "usage_events" }

// UserStat is one per-user row of the admin usage report.
type UserStat struct {
	UserID     snowflake.ID `json:"user_id"`
	Email      string       `json:"email"`
	MonthCount int64        `json:"month_count"`
	MonthCost  float64      `json:"month_cost"`
	Limit      int          `json:"limit"`
}

// ActionStat is one per-action row of the admin usage report.
type ActionStat struct {
	Action Action  `json:"action"`
	Count  int64   `json:"count"`
	Cost   float64 `json:"cost"`
}

// StatsReport is the full admin usage overview for the current month.
type StatsReport struct {
	TotalUsers             int64        `json:"total_users"`
	ActiveUsersThisMonth   int64        `json:"active_users_this_month"`
	CallsThisMonth         int64        `json:"api_calls_this_month"`
	EstimatedCostThisMonth float64      `json:"estimated_cost_this_month"`
	UsageByType            []ActionStat `json:"usage_by_type"`
	Users                  []UserStat   `json:"users"`
}
