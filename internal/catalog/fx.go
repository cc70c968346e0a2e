package catalog

import (
	"github.com/swiftprep/swiftprep/internal/catalog/repository"
	"github.com/swiftprep/swiftprep/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
