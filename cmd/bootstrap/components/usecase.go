package components

import (
	"showtime-booking/internal/pkg/config"
	"showtime-booking/internal/usecase"
	"showtime-booking/internal/usecase/commands"
	"showtime-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		NewQueryOptions,
		queries.NewAvailabilityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewQueryOptions(cfg config.Config) queries.Options {
	return queries.Options{
		CacheTTL:     cfg.Cache.TTL,
		MaxRangeDays: cfg.Availability.MaxRangeDays,
	}
}
