package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tattoo-studio-api/internal/middleware"
	"tattoo-studio-api/pkg/lambda"
)

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Functions     *Functions
	AuthService   *middleware.AuthService
	HealthChecker HealthChecker
	Logger        *logrus.Logger
	Version       string
}

// SetupRoutes mounts every function at its own path, plus health, metrics and docs
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler(config))

	router.Any("/bookings", GinAdapter(config.Functions.Bookings))
	router.Any("/contact", GinAdapter(config.Functions.Contact))
	router.Any("/orders", GinAdapter(config.Functions.Orders))
	router.Any("/messages", GinAdapter(config.Functions.Messages))
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, logger *logrus.Logger, requestsPerSecond float64, burst int) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(1 << 20))
	if requestsPerSecond > 0 {
		router.Use(middleware.RateLimiter(logger, requestsPerSecond, burst))
	}
	router.Use(middleware.ErrorHandler(logger))
}

// SetupDevelopmentRoutes adds development-only routes
func SetupDevelopmentRoutes(router *gin.Engine, config *RouterConfig) {
	tokens := NewTokenHandler(config.AuthService)

	dev := router.Group("/dev")
	{
		dev.POST("/token", tokens.IssueToken)
		dev.GET("/config", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"auth_mode":   config.AuthService.Mode(),
				"functions":   []string{FunctionBookings, FunctionContact, FunctionOrders, FunctionMessages},
				"swagger_url": "/swagger/index.html",
			})
		})
	}
}

// GinAdapter serves a function handler over gin by converting the HTTP
// request into the event shape the function receives in Lambda
func GinAdapter(handler lambda.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msgMalformedBody})
			return
		}

		headers := make(map[string]string, len(c.Request.Header))
		for name, values := range c.Request.Header {
			if len(values) > 0 {
				headers[name] = values[0]
			}
		}

		query := make(map[string]string)
		for name, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				query[name] = values[0]
			}
		}

		req := &lambda.Request{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Headers:     headers,
			QueryParams: query,
			Body:        body,
			RequestID:   c.GetString(middleware.RequestIDKey),
		}

		resp, err := handler(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			return
		}

		for name, value := range resp.Headers {
			c.Header(name, value)
		}
		contentType := resp.Headers["Content-Type"]
		if contentType == "" {
			contentType = "application/json"
		}
		c.Data(resp.StatusCode, contentType, resp.Body)
	}
}

func healthHandler(config *RouterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{
			"status":   "healthy",
			"service":  "tattoo-studio-api",
			"version":  config.Version,
			"database": "ok",
		}

		if config.HealthChecker != nil {
			if err := config.HealthChecker.Health(ctx); err != nil {
				config.Logger.WithError(err).Warn("Health check failed")
				status = http.StatusServiceUnavailable
				body["status"] = "unhealthy"
				body["database"] = err.Error()
			}
		}

		c.JSON(status, body)
	}
}
