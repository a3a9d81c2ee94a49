package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Record appends one audit event. Failures are the caller's to ignore;
	// auditing never blocks the operation it describes.
	Record(ctx context.Context, userID snowflake.ID, action string, detail map[string]any) error
	// List returns the newest events first, joined with the actor's email.
	List(ctx context.Context, limit int) ([]Entry, error)
}

type Repository interface {
	Create(ctx context.Context, event *Event) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
