package service

import (
	"strconv"

	"autotradespot_backend/internal/listings/domain"
	listingtransport "autotradespot_backend/internal/listings/transport"
	"autotradespot_backend/internal/wizard/transport"
)

func typeForm(l *domain.Listing) transport.TypeForm {
	form := transport.TypeForm{
		Title:         l.Title,
		Description:   l.Description,
		AvailableFrom: l.AvailableFrom.Format(listingtransport.DateLayout),
		Type:          string(l.Type),
	}
	switch p := l.Pricing.(type) {
	case domain.SalePricing:
		form.Pricing = &transport.PricingFields{PriceType: p.PriceType, Price: p.Price.Euros()}
	case domain.LeasePricing:
		form.Pricing = &transport.PricingFields{
			PriceType:    p.PriceType,
			Price:        p.Price.Euros(),
			AnnualKms:    p.AnnualKms,
			LeaseCompany: p.LeaseCompany,
			LeasePeriod:  p.LeasePeriod.Format(listingtransport.DateLayout),
		}
	}
	return form
}

func detailsForm(d *domain.CarDetails) transport.DetailsForm {
	year := d.ManufactureYear
	mileage := d.Mileage
	return transport.DetailsForm{
		Transmission:    d.Transmission,
		FuelType:        d.FuelType,
		BodyType:        d.BodyType,
		Condition:       d.Condition,
		Color:           d.Color,
		ColorInterior:   d.InteriorColor,
		NumDoors:        d.NumDoors,
		NumSeats:        d.NumSeats,
		ManufactureYear: &year,
		Mileage:         &mileage,
		Options:         d.OptionIDs(),
	}
}

// detailsFormFromPlate prefills what the vehicle registry knows.
func detailsFormFromPlate(lp map[string]string) transport.DetailsForm {
	return transport.DetailsForm{
		FuelType:        lp["fuel_type"],
		BodyType:        lp["body_type"],
		Color:           lp["color"],
		NumDoors:        atoiPtr(lp["num_doors"]),
		NumSeats:        atoiPtr(lp["num_seats"]),
		ManufactureYear: atoiPtr(lp["manufacture_year"]),
		Options:         []int{},
	}
}

// PricingForm describes the pricing inputs for a listing type. ok is false
// for an unknown type.
func PricingForm(listingType string) (transport.PricingFormResponse, bool) {
	switch domain.Type(listingType) {
	case domain.TypeSale:
		return transport.PricingFormResponse{
			Type: listingType,
			Fields: []transport.FieldSpec{
				{Name: "pricetype", Label: "Price type", Kind: "choice", Required: true, Choices: domain.SalePriceTypeChoices},
				{Name: "price", Label: "Price", Kind: "decimal", Required: true},
			},
		}, true
	case domain.TypeLease:
		kms := make([]domain.Choice, 0, len(domain.AnnualKmChoices))
		for _, v := range domain.AnnualKmChoices {
			kms = append(kms, domain.Choice{Value: strconv.Itoa(v), Label: strconv.Itoa(v) + " km"})
		}
		return transport.PricingFormResponse{
			Type: listingType,
			Fields: []transport.FieldSpec{
				{Name: "pricetype", Label: "Price type", Kind: "choice", Required: true, Choices: domain.LeasePriceTypeChoices},
				{Name: "price", Label: "Monthly price", Kind: "decimal", Required: true},
				{Name: "annual_kms", Label: "Annual kilometres", Kind: "choice", Required: true, Choices: kms},
				{Name: "lease_company", Label: "Lease company", Kind: "text", Required: true},
				{Name: "lease_period", Label: "Lease end date", Kind: "date", Required: true},
			},
		}, true
	default:
		return transport.PricingFormResponse{}, false
	}
}
