package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns middleware that answers cross-origin requests for the
// browser dashboard. An empty list or one containing "*" allows any origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, HeaderRequestID, HeaderCorrelationID)
	cfg.ExposeHeaders = []string{HeaderRequestID, HeaderCorrelationID, "X-Trace-ID"}
	cfg.MaxAge = 12 * time.Hour

	if allowsAll(allowedOrigins) {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}

	return cors.New(cfg)
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}

	return len(origins) == 0
}
