package playback

import (
	"github.com/swiftprep/swiftprep/internal/playback/service"
	"go.uber.org/fx"
)

var Module = fx.Module("playback.service",
	fx.Provide(service.New),
)
