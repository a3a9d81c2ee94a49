package assistant

import (
	"github.com/topiqhq/topiq/internal/assistant/anthropic"
	"github.com/topiqhq/topiq/internal/assistant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("assistant.service",
	fx.Provide(anthropic.New),
	fx.Provide(service.New),
)
