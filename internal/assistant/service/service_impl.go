// Package service orchestrates the provider round trips.
package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/topiqhq/topiq/internal/activity/domain"
	"github.com/topiqhq/topiq/internal/assistant/domain"
	"github.com/topiqhq/topiq/internal/assistant/parse"
	"github.com/topiqhq/topiq/internal/assistant/prompt"
	authdomain "github.com/topiqhq/topiq/internal/auth/domain"
	"github.com/topiqhq/topiq/internal/config"
	profiledomain "github.com/topiqhq/topiq/internal/profile/domain"
	topicdomain "github.com/topiqhq/topiq/internal/topic/domain"
	usagedomain "github.com/topiqhq/topiq/internal/usage/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type service struct {
	log      *zap.Logger
	cfg      config.Config
	provider domain.Provider
	profiles profiledomain.Service
	topics   topicdomain.Service
	usage    usagedomain.Service
	activity activitydomain.Service
}

func New(
	log *zap.Logger,
	cfg config.Config,
	provider domain.Provider,
	profiles profiledomain.Service,
	topics topicdomain.Service,
	usage usagedomain.Service,
	activity activitydomain.Service,
) domain.Service {
	return &service{
		log:      log.Named("assistant"),
		cfg:      cfg,
		provider: provider,
		profiles: profiles,
		topics:   topics,
		usage:    usage,
		activity: activity,
	}
}

func (s *service) Monitor(ctx context.Context, user *authdomain.User, action usagedomain.Action) ([]topicdomain.Topic, error) {
	if !s.cfg.MonitoringEnabled() {
		return nil, domain.ErrNotConfigured
	}
	if err := s.usage.CheckLimit(ctx, user.ID, user.MonthlyLimit); err != nil {
		return nil, err
	}

	profile, err := s.profiles.EnsureDefault(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	text, err := s.provider.Generate(ctx, prompt.Monitoring(profile), true)
	if err != nil {
		s.log.Error("monitoring generation failed",
			zap.Int64("user_id", int64(user.ID)),
			zap.Error(err),
		)
		return nil, err
	}

	suggestions := parse.TopicSuggestions(text)
	topics := make([]topicdomain.Topic, 0, len(suggestions))
	for _, sugg := range suggestions {
		topic, err := s.saveTopic(ctx, user.ID, sugg)
		if err != nil {
			return nil, err
		}
		topics = append(topics, *topic)
	}

	// A clean round trip costs a call even when nothing parsed.
	if err := s.usage.Record(ctx, user.ID, action); err != nil {
		return nil, err
	}
	_ = s.activity.Record(ctx, user.ID, string(action), map[string]any{
		"topics_found": len(topics),
	})

	s.log.Info("monitoring run complete",
		zap.Int64("user_id", int64(user.ID)),
		zap.Int("topics_found", len(topics)),
	)
	return topics, nil
}

func (s *service) Brainstorm(ctx context.Context, user *authdomain.User, topicID snowflake.ID, steering string) (string, error) {
	if !s.cfg.MonitoringEnabled() {
		return "", domain.ErrNotConfigured
	}
	if err := s.usage.CheckLimit(ctx, user.ID, user.MonthlyLimit); err != nil {
		return "", err
	}

	topic, err := s.topics.Get(ctx, user.ID, topicID)
	if err != nil {
		return "", err
	}
	profile, err := s.profiles.EnsureDefault(ctx, user.ID)
	if err != nil {
		return "", err
	}

	text, err := s.provider.Generate(ctx, prompt.Brainstorm(topic, profile, steering), false)
	if err != nil {
		s.log.Error("brainstorm generation failed",
			zap.Int64("user_id", int64(user.ID)),
			zap.Int64("topic_id", int64(topicID)),
			zap.Error(err),
		)
		return "", err
	}

	if err := s.usage.Record(ctx, user.ID, usagedomain.ActionBrainstorm); err != nil {
		return "", err
	}
	_ = s.activity.Record(ctx, user.ID, string(usagedomain.ActionBrainstorm), map[string]any{
		"topic_id": topicID.String(),
	})
	return text, nil
}

func (s *service) saveTopic(ctx context.Context, userID snowflake.ID, sugg domain.TopicSuggestion) (*topicdomain.Topic, error) {
	// Sources arrive pre-validated as JSON by the parser; keep the
	// provider's shape rather than forcing a schema on it.
	sources := []byte(sugg.Sources)
	if len(sources) == 0 {
		sources = []byte("[]")
	}
	topic := &topicdomain.Topic{
		UserID:         userID,
		Title:          sugg.Title,
		Description:    sugg.Description,
		RelevanceScore: sugg.RelevanceScore,
		Sources:        datatypes.JSON(sources),
		KeyPoints:      datatypes.NewJSONSlice(sugg.KeyPoints),
		SuggestedAngle: sugg.SuggestedAngle,
	}
	if err := s.topics.Insert(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}
