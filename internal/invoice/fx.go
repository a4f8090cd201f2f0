package invoice

import (
	"go.uber.org/fx"

	"github.com/flowbooks/flowbooks/internal/invoice/repository"
	"github.com/flowbooks/flowbooks/internal/invoice/service"
)

var Module = fx.Module("invoice",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
