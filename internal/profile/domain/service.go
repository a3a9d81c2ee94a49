package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// EnsureDefault creates the signup-time default profile if none exists.
	EnsureDefault(ctx context.Context, userID snowflake.ID) (*Profile, error)
	Get(ctx context.Context, userID snowflake.ID) (*Profile, error)
	// Update applies only the fields present in the patch; nil keeps the
	// prior value.
	Update(ctx context.Context, userID snowflake.ID, patch Patch) (*Profile, error)
}

type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	FindByUserID(ctx context.Context, userID snowflake.ID) (*Profile, error)
	UpdateFields(ctx context.Context, userID snowflake.ID, fields map[string]any) error
}

// Patch carries partial profile updates.
type Patch struct {
	FocusAreas     *[]string
	TargetAudience *string
	ContentGoals   *[]string
	Tone           *string
	Cadence        *Cadence
}

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidCadence  = errors.New("invalid_monitoring_frequency")
)
