// Package scheduler drives the daily monitoring pass over all active users.
package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	assistantdomain "github.com/topiqhq/topiq/internal/assistant/domain"
	authdomain "github.com/topiqhq/topiq/internal/auth/domain"
	"github.com/topiqhq/topiq/internal/clock"
	"github.com/topiqhq/topiq/internal/config"
	"github.com/topiqhq/topiq/internal/observability/metrics"
	profiledomain "github.com/topiqhq/topiq/internal/profile/domain"
	usagedomain "github.com/topiqhq/topiq/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// The pass fires at 08:00 local time in London, so it tracks DST shifts.
const (
	cronSpec     = "0 8 * * *"
	cronLocation = "Europe/London"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Config    config.Config
	Clock     clock.Clock
	Users     authdomain.Service
	Profiles  profiledomain.Service
	Usage     usagedomain.Service
	Assistant assistantdomain.Service
	Metrics   *metrics.SchedulerMetrics `optional:"true"`
}

type Scheduler struct {
	log       *zap.Logger
	cfg       config.Config
	clk       clock.Clock
	users     authdomain.Service
	profiles  profiledomain.Service
	usage     usagedomain.Service
	assistant assistantdomain.Service
	metrics   *metrics.SchedulerMetrics

	cron    *cron.Cron
	running atomic.Bool
}

func New(p Params) (*Scheduler, error) {
	loc, err := time.LoadLocation(cronLocation)
	if err != nil {
		return nil, err
	}
	s := &Scheduler{
		log:       p.Log.Named("scheduler"),
		cfg:       p.Config,
		clk:       p.Clock,
		users:     p.Users,
		profiles:  p.Profiles,
		usage:     p.Usage,
		assistant: p.Assistant,
		metrics:   p.Metrics,
		cron:      cron.New(cron.WithLocation(loc)),
	}
	if _, err := s.cron.AddFunc(cronSpec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the cron loop. It is a no-op without a provider credential:
// there is nothing useful a pass could do.
func (s *Scheduler) Start() {
	if !s.cfg.MonitoringEnabled() {
		s.log.Info("scheduler disabled, no provider credential")
		return
	}
	s.cron.Start()
	s.running.Store(true)
	s.log.Info("scheduler started", zap.String("spec", cronSpec), zap.String("location", cronLocation))
}

// Stop halts the cron loop and waits for an in-flight pass to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	stopCtx := s.cron.Stop()
	s.running.Store(false)
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

// Running reports whether the cron loop is active, for the health endpoint.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

func (s *Scheduler) run() {
	if err := s.RunOnce(context.Background()); err != nil {
		s.log.Error("scheduled pass failed", zap.Error(err))
	}
}

// RunOnce walks all active users sequentially and runs the monitoring flow
// for those whose cadence selects today. One user's failure never stops the
// pass.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	now := s.clk.Now()
	s.metrics.IncRun()
	s.log.Info("monitoring pass started", zap.Time("now", now))

	users, err := s.users.ListActiveUsers(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		user := &users[i]
		s.runUser(ctx, user, now)
	}
	s.log.Info("monitoring pass finished", zap.Int("users", len(users)))
	return nil
}

func (s *Scheduler) runUser(ctx context.Context, user *authdomain.User, now time.Time) {
	profile, err := s.profiles.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, profiledomain.ErrProfileNotFound) {
			s.metrics.IncUserSkip("no_profile")
			return
		}
		s.metrics.IncUserRun("error")
		s.log.Error("load profile", zap.Int64("user_id", int64(user.ID)), zap.Error(err))
		return
	}

	if !ShouldRun(profile.Cadence, now) {
		s.metrics.IncUserSkip("cadence")
		return
	}

	if err := s.usage.CheckLimit(ctx, user.ID, user.MonthlyLimit); err != nil {
		var quotaErr *usagedomain.QuotaExceededError
		if errors.As(err, &quotaErr) {
			s.metrics.IncUserSkip("quota")
			s.log.Info("user over quota, skipped", zap.Int64("user_id", int64(user.ID)))
			return
		}
		s.metrics.IncUserRun("error")
		s.log.Error("quota check", zap.Int64("user_id", int64(user.ID)), zap.Error(err))
		return
	}

	topics, err := s.assistant.Monitor(ctx, user, usagedomain.ActionScheduled)
	if err != nil {
		s.metrics.IncUserRun("error")
		s.log.Error("scheduled monitoring", zap.Int64("user_id", int64(user.ID)), zap.Error(err))
		return
	}
	s.metrics.IncUserRun("ok")
	s.log.Info("scheduled monitoring complete",
		zap.Int64("user_id", int64(user.ID)),
		zap.Int("topics_found", len(topics)),
	)
}

// ShouldRun decides whether a cadence selects this pass. Daily always runs;
// weekly runs on Mondays; biweekly runs on Mondays in the first half of the
// month.
func ShouldRun(cadence profiledomain.Cadence, now time.Time) bool {
	switch cadence {
	case profiledomain.CadenceDaily:
		return true
	case profiledomain.CadenceWeekly:
		return now.Weekday() == time.Monday
	case profiledomain.CadenceBiweekly:
		return now.Weekday() == time.Monday && now.Day() <= 14
	default:
		return false
	}
}
