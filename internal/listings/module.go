// Package listings provides the listing store bounded context module:
// viewing, favourites, lifecycle transitions and seller contact.
package listings

import (
	"time"

	apphttp "autotradespot_backend/internal/http"
	"autotradespot_backend/internal/listings/handler"
	"autotradespot_backend/internal/listings/repository"
	"autotradespot_backend/internal/listings/service"
	"autotradespot_backend/platform/httpkit"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

// Module is the listings bounded context module implementing http.Module.
type Module struct {
	handler      *handler.Handler
	service      *service.Service
	repo         *repository.Repo
	contactLimit *httpkit.IPRateLimiter
}

// NewModule wires the listing repository into the service. deps.Repo is
// ignored and replaced by the pool-backed repository.
func NewModule(pool *pgxpool.Pool, deps service.Deps) *Module {
	repo := repository.New(pool)
	deps.Repo = repo
	svc := service.New(deps)

	return &Module{
		handler:      handler.New(svc, deps.Val),
		service:      svc,
		repo:         repo,
		contactLimit: httpkit.NewIPRateLimiter(rate.Every(time.Minute), 3, deps.Log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "listings"
}

// Service returns the service layer for the wizard.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes read access for the search engine.
func (m *Module) Repository() repository.ListingReader {
	return m.repo
}

// RegisterRoutes mounts listing routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.Public, m.contactLimit.RateLimit())
	m.handler.RegisterProtectedRoutes(ctx.Protected)
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

var _ apphttp.Module = (*Module)(nil)
