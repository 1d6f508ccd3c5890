package nlu

import "go.uber.org/fx"

var Module = fx.Module("nlu",
	fx.Provide(New),
)
