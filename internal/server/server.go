// Package server wires the HTTP surface.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	activitydomain "github.com/topiqhq/topiq/internal/activity/domain"
	assistantdomain "github.com/topiqhq/topiq/internal/assistant/domain"
	authdomain "github.com/topiqhq/topiq/internal/auth/domain"
	"github.com/topiqhq/topiq/internal/auth/session"
	"github.com/topiqhq/topiq/internal/config"
	"github.com/topiqhq/topiq/internal/observability"
	obslogger "github.com/topiqhq/topiq/internal/observability/logger"
	obsmetrics "github.com/topiqhq/topiq/internal/observability/metrics"
	postdomain "github.com/topiqhq/topiq/internal/post/domain"
	profiledomain "github.com/topiqhq/topiq/internal/profile/domain"
	"github.com/topiqhq/topiq/internal/scheduler"
	topicdomain "github.com/topiqhq/topiq/internal/topic/domain"
	usagedomain "github.com/topiqhq/topiq/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.ListenPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	authsvc     authdomain.Service
	sessions    *session.Manager
	profilesvc  profiledomain.Service
	topicsvc    topicdomain.Service
	postsvc     postdomain.Service
	usagesvc    usagedomain.Service
	activitysvc activitydomain.Service
	assistant   assistantdomain.Service
	scheduler   *scheduler.Scheduler
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Authsvc     authdomain.Service
	Sessions    *session.Manager
	Profilesvc  profiledomain.Service
	Topicsvc    topicdomain.Service
	Postsvc     postdomain.Service
	Usagesvc    usagedomain.Service
	Activitysvc activitydomain.Service
	Assistant   assistantdomain.Service
	Scheduler   *scheduler.Scheduler
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		authsvc:     p.Authsvc,
		sessions:    p.Sessions,
		profilesvc:  p.Profilesvc,
		topicsvc:    p.Topicsvc,
		postsvc:     p.Postsvc,
		usagesvc:    p.Usagesvc,
		activitysvc: p.Activitysvc,
		assistant:   p.Assistant,
		scheduler:   p.Scheduler,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerAdminRoutes()
	svc.registerHealthRoute()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.AuthRequired(), s.Logout)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/", s.AuthRequired())

	api.GET("/profile", s.GetProfile)
	api.PUT("/profile", s.UpdateProfile)

	api.GET("/digest", s.Digest)
	api.POST("/monitor", s.Monitor)
	api.POST("/brainstorm", s.Brainstorm)

	api.GET("/topics/:id", s.GetTopic)
	api.PUT("/topics/:id/status", s.SetTopicStatus)

	api.POST("/posts", s.SavePost)
	api.GET("/posts", s.ListPosts)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.AuthRequired(), s.AdminRequired())

	admin.GET("/users", s.AdminListUsers)
	admin.PUT("/users/:id", s.AdminUpdateUser)
	admin.GET("/activity", s.AdminActivity)
	admin.GET("/usage-stats", s.AdminUsageStats)
}

func (s *Server) registerHealthRoute() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "ok",
			"version":           s.cfg.AppVersion,
			"scheduler_running": s.scheduler.Running(),
		})
	})
}
