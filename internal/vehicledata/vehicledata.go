// Package vehicledata provides licence plate lookups against the Dutch
// vehicle registry (RDW open data).
// This file defines the public interfaces exposed to other domains.
package vehicledata

import (
	"context"

	"autotradespot_backend/internal/vehicledata/service"
	"autotradespot_backend/internal/vehicledata/transport"
)

// Gateway is the plate lookup used by the listing wizard.
// Lookups never return errors; failures are reported in the result.
type Gateway interface {
	Lookup(ctx context.Context, plate string) transport.LookupResult
}

// ValidatePlate checks the format of a Dutch licence plate.
func ValidatePlate(input string) transport.PlateCheck {
	return service.ValidatePlate(input)
}

// MapRelevant extracts the wizard fields from merged registry data.
func MapRelevant(plate string, data map[string]any) map[string]string {
	return service.MapRelevant(plate, data)
}
