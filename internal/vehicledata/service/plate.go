package service

import (
	"strings"

	"autotradespot_backend/internal/vehicledata/transport"
)

const (
	reasonEmpty       = "License plate cannot be empty"
	reasonLength      = "License plate must be 6 characters long"
	reasonAlnum       = "License plate must contain only letters and numbers"
	reasonInvalidForm = "Invalid Dutch license plate format"
)

// plateLayouts are the recognised Dutch side codes written as letter (L)
// and digit (D) shapes, grouped in three families.
var plateLayouts = map[string]struct{}{
	// pairs: XX-XX-XX
	"LLDDDD": {}, "DDDDLL": {}, "DDLLDD": {}, "LLDDLL": {}, "LLLLDD": {}, "DDLLLL": {},
	// long middle: XX-XXX-X and X-XXX-XX
	"DDLLLD": {}, "DLLLDD": {}, "LLDDDL": {}, "LDDDLL": {},
	// short middle: XXX-XX-X and X-XX-XXX
	"LLLDDL": {}, "LDDLLL": {}, "DLLDDD": {}, "DDDLLD": {},
}

// CleanPlate strips separators and upper-cases input.
func CleanPlate(input string) string {
	return strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(input)))
}

// ValidatePlate checks input against the recognised Dutch plate layouts.
func ValidatePlate(input string) transport.PlateCheck {
	if strings.TrimSpace(input) == "" {
		return transport.PlateCheck{Reason: reasonEmpty}
	}

	clean := CleanPlate(input)
	if len(clean) != 6 {
		return transport.PlateCheck{Clean: clean, Reason: reasonLength}
	}

	var shape strings.Builder
	for _, r := range clean {
		switch {
		case r >= 'A' && r <= 'Z':
			shape.WriteByte('L')
		case r >= '0' && r <= '9':
			shape.WriteByte('D')
		default:
			return transport.PlateCheck{Clean: clean, Reason: reasonAlnum}
		}
	}

	if _, ok := plateLayouts[shape.String()]; !ok {
		return transport.PlateCheck{Clean: clean, Reason: reasonInvalidForm}
	}
	return transport.PlateCheck{Clean: clean, Valid: true}
}
