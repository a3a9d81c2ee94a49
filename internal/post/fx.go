package post

import (
	"github.com/topiqhq/topiq/internal/post/repository"
	"github.com/topiqhq/topiq/internal/post/service"
	"go.uber.org/fx"
)

var Module = fx.Module("post.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
