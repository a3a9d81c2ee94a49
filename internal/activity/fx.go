package activity

import (
	"github.com/topiqhq/topiq/internal/activity/repository"
	"github.com/topiqhq/topiq/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
