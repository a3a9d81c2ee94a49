// Package service implements the append-only activity log.
package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/activity/domain"
	"github.com/topiqhq/topiq/internal/clock"
	"go.uber.org/zap"
)

const defaultListLimit = 100

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	clk   clock.Clock
	genID func() snowflake.ID
}

func New(log *zap.Logger, repo domain.Repository, genID func() snowflake.ID, clk clock.Clock) domain.Service {
	return &service{
		log:   log.Named("activity"),
		repo:  repo,
		clk:   clk,
		genID: genID,
	}
}

func (s *service) Record(ctx context.Context, userID snowflake.ID, action string, detail map[string]any) error {
	err := s.repo.Create(ctx, &domain.Event{
		ID:        s.genID(),
		UserID:    userID,
		Action:    action,
		Detail:    detail,
		CreatedAt: s.clk.Now(),
	})
	if err != nil {
		s.log.Error("record activity", zap.String("action", action), zap.Error(err))
	}
	return err
}

func (s *service) List(ctx context.Context, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
