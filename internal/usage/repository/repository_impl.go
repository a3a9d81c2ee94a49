// Package repository persists usage events with gorm.
package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/usage/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, event *domain.UsageEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repo) CountSince(ctx context.Context, userID snowflake.ID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.UsageEvent{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) StatsSince(ctx context.Context, since time.Time) ([]domain.UserStat, error) {
	var stats []domain.UserStat
	err := r.db.WithContext(ctx).
		Table("users").
		Select(`users.id AS user_id,
			users.email,
			users.monthly_limit AS "limit",
			COUNT(usage_events.id) AS month_count,
			COALESCE(SUM(usage_events.cost), 0) AS month_cost`).
		Joins("LEFT JOIN usage_events ON usage_events.user_id = users.id AND usage_events.created_at >= ?", since).
		Group("users.id, users.email, users.monthly_limit").
		Order("month_count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *repo) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("users").Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) ActiveUsersSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.UsageEvent{}).
		Where("created_at >= ?", since).
		Distinct("user_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) ByActionSince(ctx context.Context, since time.Time) ([]domain.ActionStat, error) {
	var stats []domain.ActionStat
	err := r.db.WithContext(ctx).
		Model(&domain.UsageEvent{}).
		Select("action, COUNT(id) AS count, COALESCE(SUM(cost), 0) AS cost").
		Where("created_at >= ?", since).
		Group("action").
		Order("action").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
