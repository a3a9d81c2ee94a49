// Package service implements the topic repository operations.
package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/clock"
	"github.com/topiqhq/topiq/internal/topic/domain"
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
		log:   log.Named("topic"),
		repo:  repo,
		clk:   clk,
		genID: genID,
	}
}

func (s *service) Insert(ctx context.Context, topic *domain.Topic) error {
	if topic.ID == 0 {
		topic.ID = s.genID()
	}
	topic.Status = domain.StatusNew
	topic.CreatedAt = s.clk.Now()
	return s.repo.Create(ctx, topic)
}

func (s *service) ListRecent(ctx context.Context, userID snowflake.ID, windowDays int) ([]domain.Topic, error) {
	since := s.clk.Now().AddDate(0, 0, -windowDays)
	return s.repo.ListRecent(ctx, userID, since)
}

func (s *service) Get(ctx context.Context, userID, topicID snowflake.ID) (*domain.Topic, error) {
	return s.repo.FindByID(ctx, userID, topicID)
}

func (s *service) SetStatus(ctx context.Context, userID, topicID snowflake.ID, status domain.Status) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, userID, topicID, status); err != nil {
		return err
	}
	s.log.Info("topic status updated",
		zap.Int64("topic_id", int64(topicID)),
		zap.String("status", string(status)),
	)
	return nil
}
