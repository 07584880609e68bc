// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"autotradespot_backend/internal/auth/adapter"
	"autotradespot_backend/internal/auth/handler"
	"autotradespot_backend/internal/auth/repository"
	"autotradespot_backend/internal/auth/service"
	"autotradespot_backend/internal/events"
	apphttp "autotradespot_backend/internal/http"
	"autotradespot_backend/platform/config"
	"autotradespot_backend/platform/logger"
	"autotradespot_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	users   *adapter.UserProviderAdapter
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		users:   adapter.NewUserProviderAdapter(repo),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Users exposes user lookups to other modules.
func (m *Module) Users() *adapter.UserProviderAdapter {
	return m.users
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	ctx.Protected.GET("/users/me", m.handler.GetMe)
	ctx.Protected.PATCH("/users/me", m.handler.UpdateMe)
	ctx.Protected.POST("/users/me/password", m.handler.ChangePassword)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
