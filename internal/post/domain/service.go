package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Save appends a new draft version. The version number is one past the
	// highest existing version for the same user and topic.
	Save(ctx context.Context, userID snowflake.ID, topicID *snowflake.ID, content string) (*Post, error)
	ListByTopic(ctx context.Context, userID, topicID snowflake.ID) ([]Post, error)
	List(ctx context.Context, userID snowflake.ID) ([]Post, error)
}

type Repository interface {
	// CreateVersioned assigns the next version and inserts in one
	// transaction, so concurrent saves cannot collide.
	CreateVersioned(ctx context.Context, post *Post) error
	ListByTopic(ctx context.Context, userID, topicID snowflake.ID) ([]Post, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Post, error)
}

var ErrEmptyContent = errors.New("empty_content")
