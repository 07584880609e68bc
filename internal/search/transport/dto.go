package transport

import "autotradespot_backend/internal/listings/domain"

// SearchRequest is the facet selection of the search page. Every facet is
// optional; a zero or empty value leaves it unfiltered.
type SearchRequest struct {
	ListingType    string   `form:"listing_type" json:"listing_type" validate:"omitempty,oneof=S L"`
	FuelType       []string `form:"fuel_type" json:"fuel_type" validate:"dive,oneof=B D L C 2 3 M E H O"`
	Transmission   []string `form:"transmission" json:"transmission" validate:"dive,oneof=AUTO MANUAL SEMI"`
	NumDoors       []int    `form:"num_doors" json:"num_doors" validate:"dive,min=0,max=9"`
	Make           int      `form:"make" json:"make" validate:"min=0"`
	Model          int      `form:"model" json:"model" validate:"min=0"`
	PriceType      string   `form:"type" json:"type" validate:"max=2"`
	FromPriceSale  int      `form:"from_price_sale" json:"from_price_sale" validate:"min=0"`
	ToPriceSale    int      `form:"to_price_sale" json:"to_price_sale" validate:"min=0"`
	MaxKmsDriven   int      `form:"max_kms_driven" json:"max_kms_driven" validate:"min=0"`
	FromPriceLease int      `form:"from_price_lease" json:"from_price_lease" validate:"min=0"`
	ToPriceLease   int      `form:"to_price_lease" json:"to_price_lease" validate:"min=0"`
	MinAnnualKms   int      `form:"min_monthly_kms" json:"min_monthly_kms" validate:"min=0"`
	LeasePeriod    int      `form:"lease_period" json:"lease_period" validate:"min=0,max=120"`
}

// IntChoice is a numeric select option.
type IntChoice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// FiltersResponse lists the options of every select facet.
type FiltersResponse struct {
	ListingTypes    []domain.Choice `json:"listingTypes"`
	SalePriceTypes  []domain.Choice `json:"salePriceTypes"`
	LeasePriceTypes []domain.Choice `json:"leasePriceTypes"`
	FuelTypes       []domain.Choice `json:"fuelTypes"`
	Transmissions   []domain.Choice `json:"transmissions"`
	NumDoors        []int           `json:"numDoors"`
	AnnualKms       []IntChoice     `json:"annualKms"`
	LeasePeriods    []IntChoice     `json:"leasePeriods"`
}
