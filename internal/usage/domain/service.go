package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// CheckLimit returns *QuotaExceededError when the user's count of events
	// since the first of the current month has reached their ceiling. Call
	// it before starting a costed operation.
	CheckLimit(ctx context.Context, userID snowflake.ID, limit int) error
	// Record persists one event for a completed operation.
	Record(ctx context.Context, userID snowflake.ID, action Action) error
	CurrentMonthCount(ctx context.Context, userID snowflake.ID) (int64, error)
	// Stats aggregates the current month: platform totals, a per-action
	// breakdown, and one row per registered user.
	Stats(ctx context.Context) (*StatsReport, error)
}

type Repository interface {
	Create(ctx context.Context, event *UsageEvent) error
	CountSince(ctx context.Context, userID snowflake.ID, since time.Time) (int64, error)
	StatsSince(ctx context.Context, since time.Time) ([]UserStat, error)
	CountUsers(ctx context.Context) (int64, error)
	ActiveUsersSince(ctx context.Context, since time.Time) (int64, error)
	ByActionSince(ctx context.Context, since time.Time) ([]ActionStat, error)
}

// QuotaExceededError carries the ceiling that was hit so the transport layer
// can report it.
type QuotaExceededError struct {
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly usage limit of %d reached", e.Limit)
}
