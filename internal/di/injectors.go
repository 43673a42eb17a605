//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"contestd/internal"
	"contestd/internal/controllers"
	"contestd/internal/notify"
	"contestd/internal/providers"
	"contestd/internal/reminder"
	"contestd/internal/services"
	"contestd/internal/sources"
	"contestd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewMetricsProvider,
		providers.NewClockProvider,

		services.NewContestRegistry,
		services.NewSubscriptionStore,
		sources.FromConfig,
		notify.NewSink,

		reminder.NewZstdCompressor,
		reminder.NewFileManager,
		reminder.NewArchiveProvider,
		reminder.NewScheduler,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
