// Package search provides the faceted listing search module.
package search

import (
	apphttp "autotradespot_backend/internal/http"
	"autotradespot_backend/internal/search/handler"
	"autotradespot_backend/internal/search/service"
	"autotradespot_backend/platform/logger"
	"autotradespot_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(listings service.ListingFinder, images handler.ImageLinker, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(listings, log)
	h := handler.New(svc, images, val)

	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "search"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Public.Group("/listings/search")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
