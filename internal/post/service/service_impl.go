// Package service implements draft-post saves.
package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/clock"
	"github.com/topiqhq/topiq/internal/post/domain"
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
		log:   log.Named("post"),
		repo:  repo,
		clk:   clk,
		genID: genID,
	}
}

func (s *service) Save(ctx context.Context, userID snowflake.ID, topicID *snowflake.ID, content string) (*domain.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	post := &domain.Post{
		ID:        s.genID(),
		UserID:    userID,
		TopicID:   topicID,
		Content:   content,
		Status:    domain.StatusDraft,
		CreatedAt: s.clk.Now(),
	}
	if err := s.repo.CreateVersioned(ctx, post); err != nil {
		return nil, err
	}
	s.log.Info("draft saved",
		zap.Int64("post_id", int64(post.ID)),
		zap.Int("version", post.Version),
	)
	return post, nil
}

func (s *service) ListByTopic(ctx context.Context, userID, topicID snowflake.ID) ([]domain.Post, error) {
	return s.repo.ListByTopic(ctx, userID, topicID)
}

func (s *service) List(ctx context.Context, userID snowflake.ID) ([]domain.Post, error) {
	return s.repo.ListByUser(ctx, userID)
}
