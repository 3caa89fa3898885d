package bootstrap

import (
	"showtime-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	MetricsModule,
	components.EngineModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
