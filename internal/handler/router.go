package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"showtime-booking/internal/domain/auth"
	"showtime-booking/internal/handler/api"
	"showtime-booking/internal/handler/middleware"
	"showtime-booking/internal/pkg/config"
	"showtime-booking/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Availability *api.AvailabilityHandler
	Booking      *api.BookingHandler
	Auth         *middleware.AuthMiddleware
}

func NewHandlers(availability *api.AvailabilityHandler, booking *api.BookingHandler, authMiddleware *middleware.AuthMiddleware) Handlers {
	return Handlers{Availability: availability, Booking: booking, Auth: authMiddleware}
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, m *metrics.Metrics) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, cfg, h, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	if cfg.Metrics.Enabled && m != nil {
		engine.Use(middleware.MetricsMiddleware(m))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, m *metrics.Metrics) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled && m != nil {
		engine.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var throttle []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		throttle = append(throttle, middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	}

	apiGroup := engine.Group("/api")
	{
		availability := apiGroup.Group("/availability")
		{
			addRoutes(availability, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Availability.GetRange, Mw: throttle},
				{Method: http.MethodPost, Path: "/check", Handler: h.Availability.CheckSlot, Mw: throttle},
				{Method: http.MethodGet, Path: "/stream", Handler: h.Availability.Stream, Mw: throttle},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/bookings", Handler: h.Booking.Create, Mw: throttle},
		})

		admin := apiGroup.Group("/admin/bookings")
		admin.Use(h.Auth.RequireAuth())
		{
			operator := h.Auth.RequireRoleAtLeast(auth.RoleOperator)
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.AdminCreate, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Booking.UpdateStatus, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Booking.Reschedule, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Booking.Delete, Mw: []gin.HandlerFunc{h.Auth.RequireRoleAtLeast(auth.RoleAdmin)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
