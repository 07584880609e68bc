package vehicledata

import (
	"autotradespot_backend/internal/vehicledata/client"
	"autotradespot_backend/internal/vehicledata/service"
	"autotradespot_backend/platform/config"
	"autotradespot_backend/platform/logger"
)

// Module wires the RDW lookup.
type Module struct {
	service *service.Service
}

// NewModule creates the vehicle data module. A missing app token does not
// disable the module; lookups then report the service as unavailable.
func NewModule(cfg config.VehicleDataConfig, log *logger.Logger) *Module {
	if cfg.GetCarDataAppToken() == "" {
		log.Warn("vehicle data lookups unavailable: CARDATA_API_APP_TOKEN not configured")
	}

	apiClient := client.New(cfg.GetCarDataAppToken(), cfg.GetCarDataTimeout())
	svc := service.New(apiClient, cfg.GetCarDataAppToken(), cfg.GetCarDataEndpoints(), log)

	return &Module{service: svc}
}

// Service returns the lookup service.
func (m *Module) Service() *service.Service {
	return m.service
}

var _ Gateway = (*service.Service)(nil)
