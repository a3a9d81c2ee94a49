// Package service implements profile management.
package service

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/topiqhq/topiq/internal/profile/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type service struct {
	log  *zap.Logger
	repo domain.Repository
}

func New(log *zap.Logger, repo domain.Repository) domain.Service {
	return &service{
		log:  log.Named("profile"),
		repo: repo,
	}
}

func (s *service) EnsureDefault(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	profile := domain.Default(userID)
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	s.log.Info("default profile created", zap.Int64("user_id", int64(userID)))
	return profile, nil
}

func (s *service) Get(ctx context.Context, userID snowflake.ID) (*domain.Profile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID snowflake.ID, patch domain.Patch) (*domain.Profile, error) {
	fields := map[string]any{}
	if patch.FocusAreas != nil {
		fields["focus_areas"] = datatypes.NewJSONSlice(*patch.FocusAreas)
	}
	if patch.TargetAudience != nil {
		fields["target_audience"] = *patch.TargetAudience
	}
	if patch.ContentGoals != nil {
		fields["content_goals"] = datatypes.NewJSONSlice(*patch.ContentGoals)
	}
	if patch.Tone != nil {
		fields["tone"] = *patch.Tone
	}
	if patch.Cadence != nil {
		if !patch.Cadence.Valid() {
			return nil, domain.ErrInvalidCadence
		}
		fields["monitoring_frequency"] = *patch.Cadence
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByUserID(ctx, userID)
}
