package transport

import listingtransport "autotradespot_backend/internal/listings/transport"

// PlateRequest is the optional licence plate entry step.
type PlateRequest struct {
	LicencePlate string `json:"licenceplate" form:"licenceplate"`
}

// TypeRequest binds the listing and the pricing of the chosen type in one
// submission. Pricing fields are flat in form posts and nested in JSON.
type TypeRequest struct {
	listingtransport.ListingRequest
	Pricing PricingFields `json:"pricing"`
}

// PricingFields holds the union of sale and lease pricing inputs.
type PricingFields struct {
	PriceType    string  `json:"pricetype" form:"pricetype"`
	Price        float64 `json:"price" form:"price"`
	AnnualKms    int     `json:"annual_kms,omitempty" form:"annual_kms"`
	LeaseCompany string  `json:"lease_company,omitempty" form:"lease_company"`
	LeasePeriod  string  `json:"lease_period,omitempty" form:"lease_period"`
}

// Sale returns the fields as a sale pricing request.
func (p PricingFields) Sale() *listingtransport.SalePricingRequest {
	return &listingtransport.SalePricingRequest{PriceType: p.PriceType, Price: p.Price}
}

// Lease returns the fields as a lease pricing request.
func (p PricingFields) Lease() *listingtransport.LeasePricingRequest {
	return &listingtransport.LeasePricingRequest{
		PriceType:    p.PriceType,
		Price:        p.Price,
		AnnualKms:    p.AnnualKms,
		LeaseCompany: p.LeaseCompany,
		LeasePeriod:  p.LeasePeriod,
	}
}

// MakeRequest is the make, model and variant step.
type MakeRequest = listingtransport.MakeRequest

// DetailsRequest is the car details step.
type DetailsRequest = listingtransport.DetailsRequest
