package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/futtest/voting-system/internal/api/handler"
	"github.com/futtest/voting-system/internal/api/middleware"
	"github.com/futtest/voting-system/internal/core/domain"
	"github.com/futtest/voting-system/internal/core/ports"
	"github.com/futtest/voting-system/internal/core/service"
	"github.com/futtest/voting-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb is nil unless the Redis session backend is configured; it is only used
// by the readiness probe.
func NewRouter(cfg *config.Config, repo ports.UserRepository, sessions ports.SessionStore, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("voting"))
	e.Use(middleware.Session(sessions, cfg.Session.CookieName))

	// --- Dependencies ---
	authService := service.NewAuthService(repo, cfg.BcryptCost)
	authHandler := handler.NewAuthHandler(authService, sessions, cfg.Session.CookieName, cfg.Session.TTL)
	adminHandler := handler.NewAdminHandler(repo)

	// --- Auth routes ---
	e.GET("/api/session", authHandler.SessionState)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout)
	e.POST("/api/register", authHandler.Register)

	// --- Admin routes (super admin only) ---
	admin := e.Group("/api/admin", middleware.RequireRole(domain.RoleSuperAdmin))
	admin.GET("/data", adminHandler.Data)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(repo, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
