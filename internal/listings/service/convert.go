package service

import (
	"strings"
	"time"

	"autotradespot_backend/internal/listings/domain"
	"autotradespot_backend/internal/listings/repository"
	"autotradespot_backend/internal/listings/transport"
	"autotradespot_backend/platform/apperr"
	"autotradespot_backend/platform/sanitize"
)

const invalidChoiceMessage = "Select a valid choice. That choice is not one of the available choices."

// FieldsFromRequest maps the base listing form. An empty availability date
// defaults to today.
func FieldsFromRequest(req transport.ListingRequest, now time.Time) (repository.ListingFields, error) {
	fields := repository.ListingFields{
		Title:       sanitize.Text(req.Title),
		Description: sanitize.Text(req.Description),
		Type:        domain.Type(req.Type),
	}
	if !fields.Type.Valid() {
		return repository.ListingFields{}, fieldError("type", invalidChoiceMessage)
	}

	fields.AvailableFrom = dateOnly(now)
	if req.AvailableFrom != "" {
		d, err := time.Parse(transport.DateLayout, req.AvailableFrom)
		if err != nil {
			return repository.ListingFields{}, fieldError("available_from", "Enter a valid date.")
		}
		fields.AvailableFrom = d
	}
	return fields, nil
}

// PricingFromRequest selects the pricing variant matching the listing type.
func PricingFromRequest(t domain.Type, sale *transport.SalePricingRequest, lease *transport.LeasePricingRequest) (domain.Pricing, error) {
	switch t {
	case domain.TypeSale:
		if sale == nil {
			return nil, fieldError("pricing", "Sale pricing is required for a sale listing.")
		}
		return domain.SalePricing{
			PriceType: sale.PriceType,
			Price:     domain.MoneyFromEuros(sale.Price),
		}, nil
	case domain.TypeLease:
		if lease == nil {
			return nil, fieldError("pricing", "Lease pricing is required for a lease listing.")
		}
		end, err := time.Parse(transport.DateLayout, lease.LeasePeriod)
		if err != nil {
			return nil, fieldError("lease_period", "Enter a valid date.")
		}
		if !domain.ValidAnnualKms(lease.AnnualKms) {
			return nil, fieldError("annual_kms", invalidChoiceMessage)
		}
		return domain.LeasePricing{
			PriceType:    lease.PriceType,
			Price:        domain.MoneyFromEuros(lease.Price),
			AnnualKms:    lease.AnnualKms,
			LeaseCompany: strings.TrimSpace(lease.LeaseCompany),
			LeasePeriod:  end,
		}, nil
	default:
		return nil, fieldError("type", invalidChoiceMessage)
	}
}

// DetailsFromRequest maps the details form. Make, model and variant are
// resolved separately.
func DetailsFromRequest(req transport.DetailsRequest, now time.Time) (domain.CarDetails, error) {
	if req.ManufactureYear < domain.FirstManufactureYear || req.ManufactureYear > now.Year() {
		return domain.CarDetails{}, fieldError("manufacture_year", invalidChoiceMessage)
	}
	d := domain.CarDetails{
		Transmission:    req.Transmission,
		FuelType:        req.FuelType,
		BodyType:        req.BodyType,
		Condition:       req.Condition,
		Color:           strings.TrimSpace(req.Color),
		InteriorColor:   strings.TrimSpace(req.ColorInterior),
		NumDoors:        req.NumDoors,
		NumSeats:        req.NumSeats,
		ManufactureYear: req.ManufactureYear,
	}
	if req.Mileage != nil {
		d.Mileage = *req.Mileage
	}
	return d, nil
}

func fieldError(field, message string) error {
	return apperr.Validation("validation failed").WithDetails(map[string]string{field: message})
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
