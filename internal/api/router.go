package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/grust-community/admin-panel/internal/api/handler"
	"github.com/grust-community/admin-panel/internal/api/middleware"
	"github.com/grust-community/admin-panel/internal/core/service"
	mongodb "github.com/grust-community/admin-panel/internal/infrastructure/db/mongo"
	redisdb "github.com/grust-community/admin-panel/internal/infrastructure/db/redis"
	"github.com/grust-community/admin-panel/internal/pkg/config"
	"github.com/grust-community/admin-panel/internal/upstream"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("panel"))

	secure := cfg.Env == "production"

	// --- Dependencies ---
	client := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, log)
	auditRepo := mongodb.NewAuditRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	panelService := service.NewPanelService(client, auditRepo, cfg.MinPower, log)
	statsService := service.NewStatsService(client, time.Now, log)
	sessionService := service.NewSessionService(sessionStore, cfg.SessionSecret, cfg.SessionTTL)

	credentialHandler := handler.NewCredentialHandler(panelService, secure)
	usersHandler := handler.NewUsersHandler(panelService)
	moderationHandler := handler.NewModerationHandler(panelService)
	statsHandler := handler.NewStatsHandler(statsService)
	sessionHandler := handler.NewSessionHandler(sessionService, secure)
	auditHandler := handler.NewAuditHandler(auditRepo)

	// --- API routes ---
	// The credential middleware only extracts the cookie; mutating handlers
	// validate their payload before the credential presence check so a
	// malformed request fails 400 even without a stored token.
	api := e.Group("/api",
		middleware.Credential(),
		middleware.Session(sessionService),
	)

	api.POST("/session", sessionHandler.Login)
	api.GET("/session", sessionHandler.Current, middleware.RequireIdentity())
	api.DELETE("/session", sessionHandler.Logout)

	api.POST("/credential", credentialHandler.Set)
	api.DELETE("/credential", credentialHandler.Clear)
	api.GET("/credential/test", credentialHandler.Test, middleware.RequireCredential())
	api.POST("/credential/validate", credentialHandler.Validate,
		middleware.RequireIdentity(), middleware.RequireCredential())

	api.GET("/me", credentialHandler.Me, middleware.RequireCredential())

	api.GET("/users", usersHandler.List, middleware.RequireCredential())
	api.GET("/users/:uid", usersHandler.Get, middleware.RequireCredential())

	api.GET("/bans", moderationHandler.ListBans, middleware.RequireCredential())
	api.POST("/bans/create", moderationHandler.CreateBan)
	api.POST("/bans/delete", moderationHandler.DeleteBan)

	api.GET("/warns/:uid", moderationHandler.ListWarns, middleware.RequireCredential())
	api.POST("/warns/create", moderationHandler.CreateWarn)

	api.GET("/stats", statsHandler.Get, middleware.RequireCredential())

	api.GET("/audit", auditHandler.Recent, middleware.RequireIdentity())

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
