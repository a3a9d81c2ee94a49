package migration

import (
	activitydomain "github.com/topiqhq/topiq/internal/activity/domain"
	authdomain "github.com/topiqhq/topiq/internal/auth/domain"
	"github.com/topiqhq/topiq/internal/config"
	postdomain "github.com/topiqhq/topiq/internal/post/domain"
	profiledomain "github.com/topiqhq/topiq/internal/profile/domain"
	topicdomain "github.com/topiqhq/topiq/internal/topic/domain"
	usagedomain "github.com/topiqhq/topiq/internal/usage/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// sqlite and mysql deployments rely on gorm's schema derivation.
		return conn.AutoMigrate(
			&authdomain.User{},
			&authdomain.Session{},
			&profiledomain.Profile{},
			&topicdomain.Topic{},
			&postdomain.Post{},
			&usagedomain.UsageEvent{},
			&activitydomain.Event{},
		)
	}),
)
