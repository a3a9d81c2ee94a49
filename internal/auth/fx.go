package auth

import (
	"github.com/topiqhq/topiq/internal/auth/repository"
	"github.com/topiqhq/topiq/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
