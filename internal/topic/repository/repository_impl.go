// Package repository persists topics with gorm.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/topic/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, topic *domain.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

func (r *repo) FindByID(ctx context.Context, userID, topicID snowflake.ID) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", topicID, userID).
		First(&topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTopicNotFound
		}
		return nil, err
	}
	return &topic, nil
}

func (r *repo) ListRecent(ctx context.Context, userID snowflake.ID, since time.Time) ([]domain.Topic, error) {
	var topics []domain.Topic
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND created_at >= ?", userID, domain.StatusNew, since).
		Order("relevance_score DESC, created_at DESC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *repo) UpdateStatus(ctx context.Context, userID, topicID snowflake.ID, status domain.Status) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Topic{}).
		Where("id = ? AND user_id = ?", topicID, userID).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrTopicNotFound
	}
	return nil
}
