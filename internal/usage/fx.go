package usage

import (
	"github.com/topiqhq/topiq/internal/usage/repository"
	"github.com/topiqhq/topiq/internal/usage/service"
	"go.uber.org/fx"
)

var Module = fx.Module("usage.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
