package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kashikiri-booking/internal/domain/staff"
	"kashikiri-booking/internal/handler/api"
	"kashikiri-booking/internal/handler/middleware"
	"kashikiri-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	storeHandler *api.StoreHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, availabilityHandler, storeHandler, scheduleHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	availabilityHandler *api.AvailabilityHandler,
	storeHandler *api.StoreHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		bookingRequests := apiGroup.Group("/booking-requests")
		{
			addRoutes(bookingRequests, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(staff.RoleStore)}},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
			})
		}

		availabilityGroup := apiGroup.Group("/availability")
		availabilityGroup.Use(authMiddleware.RequireRole(staff.RoleGM))
		{
			addRoutes(availabilityGroup, []route{
				{Method: http.MethodGet, Path: "/requests", Handler: availabilityHandler.ListPending},
				{Method: http.MethodPost, Path: "/requests/:id/response", Handler: availabilityHandler.Submit},
			})
		}

		storeGroup := apiGroup.Group("/store")
		storeGroup.Use(authMiddleware.RequireRole(staff.RoleStore))
		{
			addRoutes(storeGroup, []route{
				{Method: http.MethodGet, Path: "/requests", Handler: storeHandler.List},
				{Method: http.MethodPost, Path: "/requests/:id/confirm", Handler: storeHandler.Confirm},
				{Method: http.MethodPost, Path: "/requests/:id/reject", Handler: storeHandler.Reject},
			})
		}

		schedule := apiGroup.Group("/schedule")
		{
			addRoutes(schedule, []route{
				{Method: http.MethodGet, Path: "/occupancy", Handler: scheduleHandler.Occupancy},
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
