// Package catalog provides the car reference data bounded context module.
package catalog

import (
	"context"

	"autotradespot_backend/internal/catalog/fixtures"
	"autotradespot_backend/internal/catalog/handler"
	"autotradespot_backend/internal/catalog/repository"
	"autotradespot_backend/internal/catalog/service"
	apphttp "autotradespot_backend/internal/http"
	"autotradespot_backend/platform/logger"
	"autotradespot_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// SeedDefaults loads the embedded make/model/option fixture.
func (m *Module) SeedDefaults(ctx context.Context) error {
	return m.service.Seed(ctx, fixtures.CarData)
}

// RegisterRoutes mounts public reference data routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	car := ctx.V1.Group("/car")
	car.GET("/makes", m.handler.ListMakes)
	car.GET("/models", m.handler.ListModels)
	car.GET("/options", m.handler.ListOptions)
}

var _ apphttp.Module = (*Module)(nil)
