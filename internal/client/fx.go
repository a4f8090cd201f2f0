package client

import (
	"go.uber.org/fx"

	"github.com/flowbooks/flowbooks/internal/client/repository"
	"github.com/flowbooks/flowbooks/internal/client/service"
)

var Module = fx.Module("client",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
