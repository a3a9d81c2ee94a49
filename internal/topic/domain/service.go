package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Insert(ctx context.Context, topic *Topic) error
	// ListRecent returns the caller's new topics created within the window,
	// most relevant first, ties broken by recency.
	ListRecent(ctx context.Context, userID snowflake.ID, windowDays int) ([]Topic, error)
	Get(ctx context.Context, userID, topicID snowflake.ID) (*Topic, error)
	SetStatus(ctx context.Context, userID, topicID snowflake.ID, status Status) error
}

type Repository interface {
	Create(ctx context.Context, topic *Topic) error
	FindByID(ctx context.Context, userID, topicID snowflake.ID) (*Topic, error)
	ListRecent(ctx context.Context, userID snowflake.ID, since time.Time) ([]Topic, error)
	UpdateStatus(ctx context.Context, userID, topicID snowflake.ID, status Status) error
}

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrInvalidStatus = errors.New("invalid_status")
)
