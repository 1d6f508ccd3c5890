package observability

import (
	"github.com/smallbiznis/scribe/internal/config"
	"github.com/smallbiznis/scribe/internal/observability/logger"
	"github.com/smallbiznis/scribe/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(loggerConfig),
	fx.Provide(logger.New),
	fx.Provide(metrics.New),
)

func loggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.AppVersion,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	}
}
