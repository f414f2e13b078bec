package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"skill-registry.backend/pkg/metrics"
)

const (
	serviceName    = "skill-registry-backend"
	serviceVersion = "0.1.0"
)

// allowedOrigins is set from config before the middleware is applied.
var allowedOrigins = []string{"*"}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && originAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, Idempotency-Key")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, X-Idempotency-Hit")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func originAllowed(origin string) bool {
	for _, o := range allowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// healthCheck reports a dependency failure; nil checks are skipped.
type healthCheck func(ctx context.Context) error

func registerHealthRoute(r *gin.Engine, checks ...healthCheck) {
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine, registry *prometheus.Registry) {
	r.GET("/metrics", gin.WrapH(metrics.Handler(registry)))
}
