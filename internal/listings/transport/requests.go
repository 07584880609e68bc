package transport

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ListingRequest carries the base listing fields of the type step.
type ListingRequest struct {
	Title         string `json:"title" form:"title" validate:"required,max=255"`
	Description   string `json:"description" form:"description" validate:"max=3000"`
	AvailableFrom string `json:"available_from" form:"available_from" validate:"omitempty,datetime=2006-01-02"`
	Type          string `json:"type" form:"type" validate:"required,oneof=S L"`
}

// SalePricingRequest prices a sale listing.
type SalePricingRequest struct {
	PriceType string  `json:"pricetype" form:"pricetype" validate:"required,oneof=F N O"`
	Price     float64 `json:"price" form:"price" validate:"required,gt=0,lte=99999.99"`
}

// LeasePricingRequest prices a lease listing.
type LeasePricingRequest struct {
	PriceType    string  `json:"pricetype" form:"pricetype" validate:"required,oneof=P O NO F S"`
	Price        float64 `json:"price" form:"price" validate:"required,gt=0,lte=99999.99"`
	AnnualKms    int     `json:"annual_kms" form:"annual_kms" validate:"required,oneof=5000 7500 10000 12000 15000 20000 25000 30000 35000 40000"`
	LeaseCompany string  `json:"lease_company" form:"lease_company" validate:"required,max=255"`
	LeasePeriod  string  `json:"lease_period" form:"lease_period" validate:"required,datetime=2006-01-02"`
}

// DetailsRequest carries the car details step.
type DetailsRequest struct {
	Transmission    string `json:"transmission" form:"transmission" validate:"required,oneof=AUTO MANUAL SEMI"`
	FuelType        string `json:"fuel_type" form:"fuel_type" validate:"required,oneof=B D L C 2 3 M E H O"`
	BodyType        string `json:"body_type" form:"body_type" validate:"required,oneof=C CO COU SUV SW S V T O"`
	Condition       string `json:"condition" form:"condition" validate:"required,oneof=N U C"`
	Color           string `json:"color" form:"color" validate:"max=64"`
	ColorInterior   string `json:"color_interior" form:"color_interior" validate:"max=64"`
	NumDoors        *int   `json:"num_doors" form:"num_doors" validate:"omitempty,min=0,max=9"`
	NumSeats        *int   `json:"num_seats" form:"num_seats" validate:"omitempty,min=0,max=99"`
	ManufactureYear int    `json:"manufacture_year" form:"manufacture_year" validate:"required,min=1950"`
	Mileage         *int   `json:"mileage" form:"mileage" validate:"required,min=0"`
	Options         []int  `json:"options" form:"options"`
}

// MakeRequest carries the make/model/variant step.
type MakeRequest struct {
	Make    int    `json:"make" form:"make" validate:"required,gt=0"`
	Model   int    `json:"model" form:"model" validate:"required,gt=0"`
	Variant string `json:"variant" form:"variant" validate:"max=64"`
}

// DraftRequest is the single-call draft endpoint. Pricing and details are
// optional and saved best-effort after the listing itself.
type DraftRequest struct {
	ListingRequest
	SalePricing  *SalePricingRequest  `json:"sale_pricing" validate:"-"`
	LeasePricing *LeasePricingRequest `json:"lease_pricing" validate:"-"`
	Details      *DetailsRequest      `json:"details" validate:"-"`
	Make         *int                 `json:"make"`
	Model        *int                 `json:"model"`
	Variant      string               `json:"variant" validate:"max=64"`
	LicensePlate string               `json:"license_plate" validate:"max=8"`
}

// ContactRequest is the contact-the-seller form.
type ContactRequest struct {
	FromEmail string `json:"from_email" form:"from_email" validate:"required,email"`
	Subject   string `json:"subject" form:"subject" validate:"required,max=255"`
	Message   string `json:"message" form:"message" validate:"required,max=5000"`
}
