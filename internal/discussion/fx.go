package discussion

import (
	"github.com/swiftprep/swiftprep/internal/discussion/repository"
	"github.com/swiftprep/swiftprep/internal/discussion/service"
	"go.uber.org/fx"
)

var Module = fx.Module("discussion.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
