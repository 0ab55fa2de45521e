package components

import (
	"coach-booking/internal/handler"
	"coach-booking/internal/handler/api"
	"coach-booking/internal/handler/middleware"
	"coach-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSlotHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit)
		},
		func(slots *api.SlotHandler, bookings *api.BookingHandler) handler.Handlers {
			return handler.Handlers{Slots: slots, Bookings: bookings}
		},
		func(logger *middleware.Logger, auth *middleware.AuthMiddleware, rl *middleware.RateLimiter) handler.Middlewares {
			return handler.Middlewares{Logger: logger, Auth: auth, RateLimiter: rl}
		},
	),
	fx.Invoke(handler.NewRouter),
)
