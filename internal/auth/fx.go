package auth

import (
	"github.com/swiftprep/swiftprep/internal/auth/oauth"
	"github.com/swiftprep/swiftprep/internal/auth/repository"
	"github.com/swiftprep/swiftprep/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
	fx.Provide(oauth.NewService),
)
