package transport

import (
	"autotradespot_backend/internal/listings/domain"
	listingtransport "autotradespot_backend/internal/listings/transport"
)

// Source names where a step form was reconstructed from.
type Source string

const (
	SourceListing Source = "listing"
	SourcePlate   Source = "plate"
	SourceEmpty   Source = "empty"
)

// Step names, in wizard order.
const (
	StepPlate   = "plate"
	StepType    = "type"
	StepMake    = "make"
	StepDetails = "details"
	StepImages  = "images"
	StepPreview = "preview"
)

// StateResponse describes the draft session.
type StateResponse struct {
	ListingInProgress *string           `json:"listingInProgress"`
	LPData            map[string]string `json:"lpData"`
}

type PlateStepResponse struct {
	Licence string            `json:"licence"`
	Data    map[string]string `json:"data,omitempty"`
	Next    string            `json:"next,omitempty"`
}

type TypeForm struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	AvailableFrom string         `json:"available_from"`
	Type          string         `json:"type"`
	Pricing       *PricingFields `json:"pricing,omitempty"`
}

type TypeStepResponse struct {
	Source    Source   `json:"source"`
	Form      TypeForm `json:"form"`
	ListingID string   `json:"listingId,omitempty"`
	Next      string   `json:"next,omitempty"`
}

type MakeStepResponse struct {
	Source  Source `json:"source"`
	Make    *int   `json:"make"`
	Model   *int   `json:"model"`
	Variant string `json:"variant"`
	Next    string `json:"next,omitempty"`
}

type DetailsForm struct {
	Transmission    string `json:"transmission"`
	FuelType        string `json:"fuel_type"`
	BodyType        string `json:"body_type"`
	Condition       string `json:"condition"`
	Color           string `json:"color"`
	ColorInterior   string `json:"color_interior"`
	NumDoors        *int   `json:"num_doors"`
	NumSeats        *int   `json:"num_seats"`
	ManufactureYear *int   `json:"manufacture_year"`
	Mileage         *int   `json:"mileage"`
	Options         []int  `json:"options"`
}

type DetailsStepResponse struct {
	Source Source      `json:"source"`
	Form   DetailsForm `json:"form"`
	Next   string      `json:"next,omitempty"`
}

type ImagesStepResponse struct {
	ListingID string                           `json:"listingId"`
	Images    []listingtransport.ImageResponse `json:"images"`
	Next      string                           `json:"next,omitempty"`
}

// FieldSpec describes one input of a pricing form.
type FieldSpec struct {
	Name     string          `json:"name"`
	Label    string          `json:"label"`
	Kind     string          `json:"kind"`
	Required bool            `json:"required"`
	Choices  []domain.Choice `json:"choices,omitempty"`
}

type PricingFormResponse struct {
	Type   string      `json:"type"`
	Fields []FieldSpec `json:"fields"`
}

type FinalizeResponse struct {
	Listing listingtransport.ListingResponse `json:"listing"`
	Posted  bool                             `json:"posted"`
	Reasons []string                         `json:"reasons"`
}
