// routes.go - Route and middleware registration
package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RegisterRoutes registers all routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", h.HandleHealth)
	e.POST("/generate", h.HandleGenerate)
}

// SetupMiddleware configures error handling, recovery and request logging
func SetupMiddleware(e *echo.Echo, logger *zap.Logger, requestLogging bool) {
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	if requestLogging {
		e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:  true,
			LogURI:     true,
			LogStatus:  true,
			LogLatency: true,
			LogError:   true,
			Skipper: func(c echo.Context) bool {
				return c.Request().URL.Path == "/health"
			},
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				logger.Info("request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Duration("latency", v.Latency),
					zap.Error(v.Error))
				return nil
			},
		}))
	}
}

// New builds a configured Echo instance
func New(h *Handler, logger *zap.Logger, requestLogging bool, readTimeout, writeTimeout time.Duration) *echo.Echo {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = readTimeout
	e.Server.WriteTimeout = writeTimeout

	SetupMiddleware(e, logger, requestLogging)
	RegisterRoutes(e, h)
	return e
}
