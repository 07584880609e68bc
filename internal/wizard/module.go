// Package wizard provides the multi-step listing creation flow. Each step
// is reconstructed from the draft session so a user can leave and resume.
package wizard

import (
	apphttp "autotradespot_backend/internal/http"
	"autotradespot_backend/internal/wizard/handler"
	"autotradespot_backend/internal/wizard/service"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(deps service.Deps) *Module {
	return &Module{handler: handler.New(service.New(deps))}
}

func (m *Module) Name() string {
	return "wizard"
}

// RegisterRoutes mounts the wizard under the signed-in API.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/listings/wizard"))
}

var _ apphttp.Module = (*Module)(nil)
