package profile

import (
	"go.uber.org/fx"

	"github.com/flowbooks/flowbooks/internal/profile/repository"
	"github.com/flowbooks/flowbooks/internal/profile/service"
)

var Module = fx.Module("profile",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
