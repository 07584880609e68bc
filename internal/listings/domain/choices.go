package domain

import "time"

// Choice is one selectable enumeration value with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Type is the kind of offer a listing represents.
type Type string

const (
	TypeSale  Type = "S"
	TypeLease Type = "L"
)

func (t Type) Valid() bool {
	return t == TypeSale || t == TypeLease
}

// Label is the short description shown next to a listing.
func (t Type) Label() string {
	if t == TypeSale {
		return "for sale"
	}
	return "lease"
}

var TypeChoices = []Choice{
	{Value: string(TypeSale), Label: "Sale"},
	{Value: string(TypeLease), Label: "Lease"},
}

var SalePriceTypeChoices = []Choice{
	{Value: "F", Label: "Fixed price"},
	{Value: "N", Label: "Negotiable"},
	{Value: "O", Label: "Open for bidding"},
}

var LeasePriceTypeChoices = []Choice{
	{Value: "P", Label: "Private"},
	{Value: "O", Label: "Operational"},
	{Value: "NO", Label: "Netto Operational"},
	{Value: "F", Label: "Financial"},
	{Value: "S", Label: "Short"},
}

var TransmissionChoices = []Choice{
	{Value: "AUTO", Label: "Automatic"},
	{Value: "MANUAL", Label: "Manual"},
	{Value: "SEMI", Label: "Half/Semi-automatic"},
}

var FuelTypeChoices = []Choice{
	{Value: "B", Label: "Benzine"},
	{Value: "D", Label: "Diesel"},
	{Value: "L", Label: "LPG"},
	{Value: "C", Label: "CNG"},
	{Value: "2", Label: "Elektro/Benzine"},
	{Value: "3", Label: "Elektro/Diesel"},
	{Value: "M", Label: "Ethanol"},
	{Value: "E", Label: "Elektrisch"},
	{Value: "H", Label: "Waterstof"},
	{Value: "O", Label: "Overig"},
}

var BodyTypeChoices = []Choice{
	{Value: "C", Label: "Compact"},
	{Value: "CO", Label: "Convertible"},
	{Value: "COU", Label: "Coupe"},
	{Value: "SUV", Label: "SUV"},
	{Value: "SW", Label: "Station wagon"},
	{Value: "S", Label: "Sedan"},
	{Value: "V", Label: "Van"},
	{Value: "T", Label: "Transporter"},
	{Value: "O", Label: "Overig"},
}

var ConditionChoices = []Choice{
	{Value: "N", Label: "New"},
	{Value: "U", Label: "Used"},
	{Value: "C", Label: "Classic"},
}

// AnnualKmChoices are the allowed yearly mileage allowances for leases.
var AnnualKmChoices = []int{5000, 7500, 10000, 12000, 15000, 20000, 25000, 30000, 35000, 40000}

// LeasePeriodChoices are the remaining lease terms, in months, offered as a search facet.
var LeasePeriodChoices = []int{6, 12, 18, 24, 36, 48, 60}

// FirstManufactureYear is the oldest selectable year of manufacture.
const FirstManufactureYear = 1950

// ManufactureYears returns the selectable years, newest first.
func ManufactureYears(now time.Time) []int {
	years := make([]int, 0, now.Year()-FirstManufactureYear+1)
	for y := now.Year(); y >= FirstManufactureYear; y-- {
		years = append(years, y)
	}
	return years
}

// LabelFor returns the label for value, or value itself when unknown.
func LabelFor(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
