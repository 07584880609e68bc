package domain

import "time"

// Pricing is the price record of a listing. Exactly one variant exists per
// listing and it must match the listing type.
type Pricing interface {
	ListingType() Type
	Amount() Money
	PriceTypeCode() string
	PriceTypeLabel() string
}

// SalePricing prices a listing offered for sale.
type SalePricing struct {
	PriceType string
	Price     Money
}

func (SalePricing) ListingType() Type        { return TypeSale }
func (p SalePricing) Amount() Money          { return p.Price }
func (p SalePricing) PriceTypeCode() string  { return p.PriceType }
func (p SalePricing) PriceTypeLabel() string { return LabelFor(SalePriceTypeChoices, p.PriceType) }

// LeasePricing prices a listing offered as a lease takeover.
type LeasePricing struct {
	PriceType    string
	Price        Money
	AnnualKms    int
	LeaseCompany string
	LeasePeriod  time.Time
}

func (LeasePricing) ListingType() Type        { return TypeLease }
func (p LeasePricing) Amount() Money          { return p.Price }
func (p LeasePricing) PriceTypeCode() string  { return p.PriceType }
func (p LeasePricing) PriceTypeLabel() string { return LabelFor(LeasePriceTypeChoices, p.PriceType) }

// ValidAnnualKms reports whether kms is one of the allowed allowances.
func ValidAnnualKms(kms int) bool {
	for _, v := range AnnualKmChoices {
		if v == kms {
			return true
		}
	}
	return false
}
