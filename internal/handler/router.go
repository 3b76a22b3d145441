package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roombook/internal/handler/api"
	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/handler/middleware"
	"roombook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, bookingHandler *api.BookingHandler, cancellationHandler *api.CancellationHandler) {
	reqdto.RegisterValidations()
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, cancellationHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
}

func setupRoutes(engine *gin.Engine, bookingHandler *api.BookingHandler, cancellationHandler *api.CancellationHandler) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api/v1")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/bookings", Handler: bookingHandler.Create},
			{Method: http.MethodGet, Path: "/rooms/:id/availability", Handler: bookingHandler.CheckAvailability},
			{Method: http.MethodPost, Path: "/bookings/:id/cancellation-request", Handler: cancellationHandler.Request},
			{Method: http.MethodPost, Path: "/bookings/:id/cancellation-confirm", Handler: cancellationHandler.Confirm},
		})
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
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
