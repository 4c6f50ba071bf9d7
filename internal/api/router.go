package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/clientportal/intake-gateway/internal/api/handler"
	"github.com/clientportal/intake-gateway/internal/api/middleware"
	"github.com/clientportal/intake-gateway/internal/core/ports"
	"github.com/clientportal/intake-gateway/internal/core/session"
)

// Services bundles the use-case dependencies the router wires into
// handlers.
type Services struct {
	Intake    ports.IntakeService
	Auth      ports.AuthService
	Dashboard ports.DashboardService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(sessions *session.Store, svcs Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("intake_portal"))

	// --- Handlers ---
	intakeHandler := handler.NewIntakeHandler(svcs.Intake)
	authHandler := handler.NewAuthHandler(svcs.Auth)
	adminHandler := handler.NewAdminHandler(svcs.Dashboard)
	gate := middleware.Gate(sessions)

	// --- Public intake form ---
	e.POST("/api/submissions", intakeHandler.Submit)
	e.GET("/api/submissions/phone-preview", intakeHandler.PhonePreview)

	// --- Admin session ---
	e.POST("/api/admin/login", authHandler.Login)
	e.POST("/api/admin/logout", authHandler.Logout)

	// --- Protected admin views ---
	e.GET("/api/admin/dashboard", adminHandler.Dashboard, gate)
	e.GET("/api/admin/export", adminHandler.Export, gate)

	// --- Probes & metrics ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
