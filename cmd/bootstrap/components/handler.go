package components

import (
	"showtime-booking/internal/handler"
	"showtime-booking/internal/handler/api"
	"showtime-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
		handler.NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)
