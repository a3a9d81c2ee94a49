// Package repository persists posts with gorm.
package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/post/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) CreateVersioned(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		q := tx.Model(&domain.Post{}).
			Select("COALESCE(MAX(version), 0)").
			Where("user_id = ?", post.UserID)
		if post.TopicID != nil {
			q = q.Where("topic_id = ?", *post.TopicID)
		} else {
			q = q.Where("topic_id IS NULL")
		}
		if err := q.Scan(&maxVersion).Error; err != nil {
			return err
		}
		post.Version = maxVersion + 1
		return tx.Create(post).Error
	})
}

func (r *repo) ListByTopic(ctx context.Context, userID, topicID snowflake.ID) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		Order("version DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repo) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
