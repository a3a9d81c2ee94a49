// Package service implements the monthly usage meter.
package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/clock"
	"github.com/topiqhq/topiq/internal/usage/domain"
	"go.uber.org/zap"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	clk   clock.Clock
	genID func() snowflake.ID
}

func New(log *zap.Logger, repo domain.Repository, genID func() snowflake.ID, clk clock.Clock) domain.Service {
	return &service{
		log:   log.Named("usage"),
		repo:  repo,
		clk:   clk,
		genID: genID,
	}
}

// monthStart returns midnight UTC on the first of the current month. The
// window resets there, not on a rolling 30 days.
func (s *service) monthStart() time.Time {
	now := s.clk.Now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *service) CheckLimit(ctx context.Context, userID snowflake.ID, limit int) error {
	count, err := s.repo.CountSince(ctx, userID, s.monthStart())
	if err != nil {
		return err
	}
	if count >= int64(limit) {
		s.log.Warn("monthly limit reached",
			zap.Int64("user_id", int64(userID)),
			zap.Int64("count", count),
			zap.Int("limit", limit),
		)
		return &domain.QuotaExceededError{Limit: limit}
	}
	return nil
}

func (s *service) Record(ctx context.Context, userID snowflake.ID, action domain.Action) error {
	return s.repo.Create(ctx, &domain.UsageEvent{
		ID:        s.genID(),
		UserID:    userID,
		Action:    action,
		Cost:      action.Cost(),
		CreatedAt: s.clk.Now(),
	})
}

func (s *service) CurrentMonthCount(ctx context.Context, userID snowflake.ID) (int64, error) {
	return s.repo.CountSince(ctx, userID, s.monthStart())
}

func (s *service) Stats(ctx context.Context) (*domain.StatsReport, error) {
	since := s.monthStart()

	users, err := s.repo.StatsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.ActiveUsersSince(ctx, since)
	if err != nil {
		return nil, err
	}
	byAction, err := s.repo.ByActionSince(ctx, since)
	if err != nil {
		return nil, err
	}

	report := &domain.StatsReport{
		TotalUsers:           total,
		ActiveUsersThisMonth: active,
		UsageByType:          byAction,
		Users:                users,
	}
	for _, row := range byAction {
		report.CallsThisMonth += row.Count
		report.EstimatedCostThisMonth += row.Cost
	}
	return report, nil
}
