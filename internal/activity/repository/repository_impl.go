// Package repository persists activity events with gorm.
package repository

import (
	"context"

	"github.com/topiqhq/topiq/internal/activity/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, event *domain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repo) ListRecent(ctx context.Context, limit int) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := r.db.WithContext(ctx).
		Table("activity_events").
		Select(`activity_events.id,
			activity_events.user_id,
			users.email,
			users.name,
			activity_events.action,
			activity_events.detail,
			activity_events.created_at`).
		Joins("JOIN users ON users.id = activity_events.user_id").
		Order("activity_events.created_at DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
