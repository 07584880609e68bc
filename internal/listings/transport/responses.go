package transport

import (
	"time"

	"autotradespot_backend/internal/listings/domain"
)

type PricingResponse struct {
	Kind           string  `json:"kind"`
	PriceType      string  `json:"pricetype"`
	PriceTypeLabel string  `json:"pricetypeLabel"`
	Price          float64 `json:"price"`
	AnnualKms      *int    `json:"annualKms,omitempty"`
	LeaseCompany   string  `json:"leaseCompany,omitempty"`
	LeasePeriod    string  `json:"leasePeriod,omitempty"`
}

type OptionResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type DetailsResponse struct {
	Transmission      string           `json:"transmission"`
	TransmissionLabel string           `json:"transmissionLabel"`
	FuelType          string           `json:"fuelType"`
	FuelTypeLabel     string           `json:"fuelTypeLabel"`
	BodyType          string           `json:"bodyType"`
	BodyTypeLabel     string           `json:"bodyTypeLabel"`
	Condition         string           `json:"condition"`
	ConditionLabel    string           `json:"conditionLabel"`
	Color             string           `json:"color"`
	ColorInterior     string           `json:"colorInterior"`
	NumDoors          *int             `json:"numDoors"`
	NumSeats          *int             `json:"numSeats"`
	ManufactureYear   int              `json:"manufactureYear"`
	Mileage           int              `json:"mileage"`
	MakeID            *int             `json:"makeId"`
	Make              string           `json:"make"`
	ModelID           *int             `json:"modelId"`
	Model             string           `json:"model"`
	Variant           string           `json:"variant"`
	FullName          string           `json:"fullName"`
	LicensePlate      string           `json:"licensePlate,omitempty"`
	Options           []OptionResponse `json:"options"`
}

type ImageResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	URL          string    `json:"url,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	PreviewURL   string    `json:"previewUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CompletenessResponse is shown to owners while a listing is being built.
type CompletenessResponse struct {
	Complete bool     `json:"complete"`
	Failing  []string `json:"failing"`
	Reasons  []string `json:"reasons"`
}

type ListingResponse struct {
	ID            string                `json:"id"`
	OwnerID       string                `json:"ownerId"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	AvailableFrom string                `json:"availableFrom"`
	Type          string                `json:"type"`
	TypeLabel     string                `json:"typeLabel"`
	Status        int                   `json:"status"`
	StatusName    string                `json:"statusName"`
	ViewCount     int64                 `json:"viewCount"`
	Favourites    int                   `json:"favourites"`
	IsFavourite   bool                  `json:"isFavourite"`
	IsOwner       bool                  `json:"isOwner"`
	CreatedAt     time.Time             `json:"createdAt"`
	ModifiedAt    time.Time             `json:"modifiedAt"`
	Pricing       *PricingResponse      `json:"pricing"`
	Details       *DetailsResponse      `json:"details"`
	Images        []ImageResponse       `json:"images"`
	Completeness  *CompletenessResponse `json:"completeness,omitempty"`
}

type ListingListResponse struct {
	Items []ListingResponse `json:"items"`
	Total int               `json:"total"`
}

type SoftFailureResponse struct {
	Part    string `json:"part"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type DraftResponse struct {
	Listing      ListingResponse       `json:"listing"`
	SoftFailures []SoftFailureResponse `json:"softFailures"`
}

type ContactFormResponse struct {
	ListingID string `json:"listingId"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type FavouriteResponse struct {
	ListingID string `json:"listingId"`
	Favourite bool   `json:"favourite"`
}

// ActionRequest selects an owner lifecycle action.
type ActionRequest struct {
	Action string `json:"action" validate:"required,oneof=submit delete restore reserve sell deactivate"`
}

type StatusChoice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// TypesResponse lists every enumeration a client needs to build forms.
type TypesResponse struct {
	ListingTypes     []domain.Choice `json:"listingTypes"`
	Statuses         []StatusChoice  `json:"statuses"`
	SalePriceTypes   []domain.Choice `json:"salePriceTypes"`
	LeasePriceTypes  []domain.Choice `json:"leasePriceTypes"`
	Transmissions    []domain.Choice `json:"transmissions"`
	FuelTypes        []domain.Choice `json:"fuelTypes"`
	BodyTypes        []domain.Choice `json:"bodyTypes"`
	Conditions       []domain.Choice `json:"conditions"`
	AnnualKms        []int           `json:"annualKms"`
	LeasePeriods     []int           `json:"leasePeriods"`
	ManufactureYears []int           `json:"manufactureYears"`
}
