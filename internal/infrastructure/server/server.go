package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/healthhelper/core/internal/adapters/http"
	"github.com/healthhelper/core/internal/adapters/repository"
	"github.com/healthhelper/core/internal/application/services"
	"github.com/healthhelper/core/internal/infrastructure/config"
	"github.com/healthhelper/core/internal/infrastructure/logger"
	"github.com/healthhelper/core/internal/ports"
	"github.com/healthhelper/core/internal/scheduler"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance. The store and scheduler are owned
// by the caller so the serve command can share them with the water
// sweep and shut them down in order.
func New(cfg *config.Config, store ports.ReminderStore, sched *scheduler.Scheduler, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize catalogs
	doctorDirectory := repository.NewDoctorDirectory()
	symptomIndex := repository.NewSymptomIndex()
	tipCatalog := repository.NewTipCatalog()
	emergencyDirectory := repository.NewEmergencyDirectory()

	// Initialize services
	reminderService := services.NewReminderService(store, sched, appLogger)
	symptomService := services.NewSymptomService(symptomIndex, appLogger)
	doctorService := services.NewDoctorService(doctorDirectory, appLogger)
	tipService := services.NewTipService(tipCatalog, appLogger)
	emergencyService := services.NewEmergencyService(emergencyDirectory, appLogger)
	uploadService, err := services.NewUploadService(cfg.Uploads.Dir, appLogger)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	reminderHandler := httpHandlers.NewReminderHandler(reminderService, appLogger)
	symptomHandler := httpHandlers.NewSymptomHandler(symptomService, appLogger)
	doctorHandler := httpHandlers.NewDoctorHandler(doctorService, appLogger)
	tipHandler := httpHandlers.NewTipHandler(tipService, appLogger)
	emergencyHandler := httpHandlers.NewEmergencyHandler(emergencyService, appLogger)
	uploadHandler := httpHandlers.NewUploadHandler(uploadService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
	}

	server.setupMiddleware()
	server.setupRoutes(reminderHandler, symptomHandler, doctorHandler, tipHandler, emergencyHandler, uploadHandler)

	if cfg.Metrics.Enabled {
		server.setupMetrics(sched)
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(
	reminderHandler *httpHandlers.ReminderHandler,
	symptomHandler *httpHandlers.SymptomHandler,
	doctorHandler *httpHandlers.DoctorHandler,
	tipHandler *httpHandlers.TipHandler,
	emergencyHandler *httpHandlers.EmergencyHandler,
	uploadHandler *httpHandlers.UploadHandler,
) {
	// Health check
	s.echo.GET("/health", s.healthCheck)

	api := s.echo.Group("/api")

	// Reminder routes
	reminderGroup := api.Group("/reminders")
	reminderGroup.GET("", reminderHandler.ListReminders)
	reminderGroup.POST("", reminderHandler.CreateReminder)
	reminderGroup.PUT("/:id", reminderHandler.UpdateReminder)
	reminderGroup.DELETE("/:id", reminderHandler.DeleteReminder)

	// Symptom checker routes
	symptomGroup := api.Group("/symptoms")
	symptomGroup.POST("/check", symptomHandler.CheckSymptoms)
	symptomGroup.GET("/suggestions", symptomHandler.GetSuggestions)

	// Doctor search routes
	doctorGroup := api.Group("/doctors")
	doctorGroup.GET("/nearby", doctorHandler.FindNearby)
	doctorGroup.GET("/:id", doctorHandler.GetDoctor)

	// Emergency contact routes
	emergencyGroup := api.Group("/emergency")
	emergencyGroup.GET("", emergencyHandler.GetCountries)
	emergencyGroup.GET("/:country", emergencyHandler.GetContacts)

	// Health tip routes
	tipGroup := api.Group("/tips")
	tipGroup.GET("", tipHandler.GetAllTips)
	tipGroup.GET("/random", tipHandler.GetRandomTip)
	tipGroup.GET("/:category", tipHandler.GetTipsByCategory)

	// Image upload
	api.POST("/upload-image", uploadHandler.UploadImage)

	// Static client. HTML5 mode serves index.html for unmatched paths
	// so client-side routes survive a page reload. API paths are skipped
	// or the fallback would swallow their JSON 404 bodies.
	if s.config.Static.Enabled {
		s.echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  s.config.Static.Dir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api")
			},
		}))
	}
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics(sched *scheduler.Scheduler) {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	if sched != nil {
		sched.RegisterMetrics(registry)
	}

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// healthCheck reports process liveness
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler translates errors into the {error} response shape
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  string
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = fmt.Sprintf("%v", he.Message)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if ve, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = ve.Error()
		} else {
			msg = http.StatusText(code)
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, map[string]string{"error": msg})
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
