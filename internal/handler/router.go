package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coach-booking/internal/domain/user"
	"coach-booking/internal/handler/api"
	"coach-booking/internal/handler/middleware"
	"coach-booking/internal/handler/validation"
	"coach-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Slots    *api.SlotHandler
	Bookings *api.BookingHandler
}

type Middlewares struct {
	Logger      *middleware.Logger
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) error {
	if err := validation.RegisterWithGin(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, mw)
	setupRoutes(engine, h, mw)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		coaches := apiGroup.Group("/coaches/:coachId")
		coaches.Use(mw.Auth.OptionalAuth())
		{
			addRoutes(coaches, []route{
				{Method: http.MethodGet, Path: "/slots", Handler: h.Slots.Slots},
				{Method: http.MethodGet, Path: "/slots/window", Handler: h.Slots.Window},
			})
		}

		coachesAuth := apiGroup.Group("/coaches/:coachId")
		coachesAuth.Use(mw.Auth.RequireAuth())
		{
			addRoutes(coachesAuth, []route{
				{Method: http.MethodGet, Path: "/plan", Handler: h.Slots.Plan},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(mw.Auth.RequireAuth())
		{
			addRoutes(bookings, []route{
				{
					Method:  http.MethodPost,
					Path:    "",
					Handler: h.Bookings.Create,
					Mw:      []gin.HandlerFunc{mw.Auth.RequireRole(user.RoleClient), mw.RateLimiter.Middleware()},
				},
				{Method: http.MethodGet, Path: "", Handler: h.Bookings.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Bookings.Cancel},
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
			h = chainHandlers(append(r.Mw, r.Handler)...)
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
