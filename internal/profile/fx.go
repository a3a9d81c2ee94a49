package profile

import (
	"github.com/topiqhq/topiq/internal/profile/repository"
	"github.com/topiqhq/topiq/internal/profile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("profile.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
