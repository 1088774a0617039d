package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotation-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// ServiceName names the service in traces.
	ServiceName string

	// HealthHandler handles the /-/ endpoints.
	HealthHandler *handlers.HealthHandler

	// QuotationHandler handles the /api/quotations endpoints.
	QuotationHandler *handlers.QuotationHandler

	// RealtimePath is where WebSocket subscribers connect.
	RealtimePath string

	// RealtimeHandler upgrades and serves subscriber connections.
	RealtimeHandler http.HandlerFunc

	// AllowedOrigins is the CORS allow list for the API.
	AllowedOrigins []string

	// Timeout is the deadline for each API request.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and metrics
//  5. Logging (skips health endpoints and the realtime path)
//  6. CORS
//
// Route groups:
//   - /-/: health, build and metrics endpoints
//   - /api/: quotation endpoints, with a request deadline
//   - RealtimePath: WebSocket subscribers, no deadline
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(middleware.Recovery(), middleware.RequestID(), middleware.CorrelationID())
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.RealtimePath), middleware.CORS(cfg.AllowedOrigins))

	engine.NoRoute(func(c *gin.Context) {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api")
	if cfg.Timeout > 0 {
		api.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.QuotationHandler != nil {
		cfg.QuotationHandler.RegisterRoutes(api)
	}

	if cfg.RealtimeHandler != nil && cfg.RealtimePath != "" {
		engine.GET(cfg.RealtimePath, WrapUpgrade(cfg.RealtimeHandler))
	}
}
