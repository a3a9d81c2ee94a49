package topic

import (
	"github.com/topiqhq/topiq/internal/topic/repository"
	"github.com/topiqhq/topiq/internal/topic/service"
	"go.uber.org/fx"
)

var Module = fx.Module("topic.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
