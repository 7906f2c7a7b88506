package web

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"sportsNewsMCP/internal/application"
	"sportsNewsMCP/internal/infrastructure/metrics"
)

const (
	ServerName    = "mcp-soccer-news"
	ServerVersion = "1.0.0"
)

type Dependencies struct {
	Classifier *application.Classifier
	News       *application.NewsService
	Formatter  *application.Formatter
	Logger     *slog.Logger
	// Metrics may be nil; /metrics is then not served.
	Metrics *metrics.Recorder
	// RateLimitRPS <= 0 disables the per-client limiter.
	RateLimitRPS float64
}

func NewServer(deps Dependencies) *echo.Echo {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/health" || path == "/metrics"
		},
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.InfoContext(c.Request().Context(), "HTTP request completed",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"error", v.Error)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if deps.RateLimitRPS > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: func(c echo.Context) bool {
				return c.Request().URL.Path == "/health"
			},
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:  rate.Limit(deps.RateLimitRPS),
				Burst: int(math.Max(1, math.Ceil(deps.RateLimitRPS))),
			}),
			DenyHandler: func(c echo.Context, identifier string, err error) error {
				return c.JSON(http.StatusTooManyRequests, errorResponse{Success: false, Error: "Too many requests"})
			},
			ErrorHandler: func(c echo.Context, err error) error {
				return c.JSON(http.StatusForbidden, errorResponse{Success: false, Error: "Unable to identify client"})
			},
		}))
	}

	newsHandler := NewNewsHandler(deps.Classifier, deps.News, deps.Formatter, logger)
	mcpHandler := NewMCPHandler(deps.Classifier, deps.News, deps.Formatter, deps.Metrics, logger)

	e.GET("/health", HandleHealth)

	api := e.Group("/api")
	api.GET("/categories", newsHandler.HandleCategories)
	api.GET("/news/soccer", newsHandler.HandleSoccer)
	api.GET("/news/golf", newsHandler.HandleGolf)
	api.POST("/news/smart", newsHandler.HandleSmart)

	e.POST("/mcp", mcpHandler.Handle)

	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}

	return e
}

// errorHandler keeps the REST error envelope for framework errors
// (unknown routes, recovered panics).
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Failed to process request"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if msg, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
				message = msg
			}
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, errorResponse{Success: false, Error: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
