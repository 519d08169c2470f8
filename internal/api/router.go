package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/placequest/explorer-api/docs"
	"github.com/placequest/explorer-api/internal/api/handler"
	"github.com/placequest/explorer-api/internal/api/middleware"
	"github.com/placequest/explorer-api/internal/core/domain"
	"github.com/placequest/explorer-api/internal/core/ports"
)

// Services bundles the core services the HTTP layer depends on.
type Services struct {
	Auth       ports.AuthService
	Visits     ports.VisitService
	Users      ports.UserService
	Missions   ports.MissionService
	Places     ports.PlaceService
	Moderation ports.ModerationService
}

// Options carries the HTTP-layer settings.
type Options struct {
	JWTSecret string
	Log       zerolog.Logger
	// Readiness lists the dependency probes behind /health/ready.
	Readiness map[string]handler.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(opts.Log))
	e.Use(echoprometheus.NewMiddleware("explorer"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	profileHandler := handler.NewProfileHandler(svc.Users, svc.Visits)
	missionHandler := handler.NewMissionHandler(svc.Missions)
	placeHandler := handler.NewPlaceHandler(svc.Places, svc.Moderation)
	operatorHandler := handler.NewOperatorHandler(svc.Moderation)
	userHandler := handler.NewUserHandler(svc.Users)

	authenticated := middleware.Auth(opts.JWTSecret)
	asUser := []echo.MiddlewareFunc{authenticated, middleware.RBAC(domain.RoleUser), middleware.LoadUser(svc.Auth)}
	asOperator := []echo.MiddlewareFunc{authenticated, middleware.RBAC(domain.RoleOperator), middleware.LoadOperator(svc.Auth)}

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/operator/login", authHandler.OperatorLogin)

	// --- Profile ---
	v1.GET("/me", profileHandler.Me, asUser...)
	v1.POST("/me/preferences", profileHandler.UpdatePreferences, asUser...)
	v1.POST("/me/visit", profileHandler.Visit, asUser...)

	// --- Missions ---
	v1.GET("/missions", missionHandler.List, asUser...)
	v1.GET("/missions/available", missionHandler.Available, asUser...)
	v1.POST("/missions/activate", missionHandler.Activate, asUser...)
	v1.DELETE("/missions/:missionId", missionHandler.Remove, asUser...)
	v1.POST("/missions", missionHandler.Create, asOperator...)

	// --- Places ---
	v1.GET("/places", placeHandler.Nearby, asUser...)
	v1.GET("/places/:id", placeHandler.Get, asUser...)
	v1.POST("/places/request", placeHandler.SubmitNew, asUser...)
	v1.PUT("/places/:id", placeHandler.SubmitEdit, asUser...)

	// --- Users ---
	v1.GET("/users", userHandler.List, asUser...)
	v1.GET("/users/:username", userHandler.Get, asUser...)

	// --- Operator moderation ---
	v1.GET("/operator/me", operatorHandler.Me, asOperator...)
	v1.GET("/operator/place_requests", operatorHandler.ListRequests, asOperator...)
	v1.GET("/operator/place_requests/:id", operatorHandler.GetRequest, asOperator...)
	v1.PATCH("/operator/place_requests/:id", operatorHandler.DecideRequest, asOperator...)
	v1.GET("/heatmap/missions", userHandler.MissionHeatmap, asOperator...)

	// --- Health probes and ops (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)                         // liveness  – is the process alive?
	e.GET("/health/ready", handler.NewReadinessHandler(opts.Readiness).Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
