package service

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// relevantFields maps draft keys to RDW attribute names.
var relevantFields = map[string]string{
	"make":             "merk",
	"model":            "handelsbenaming",
	"color":            "eerste_kleur",
	"num_doors":        "aantal_deuren",
	"num_seats":        "aantal_zitplaatsen",
	"manufacture_year": "datum_eerste_toelating",
	"fuel_type":        "brandstof_omschrijving",
	"body_type":        "inrichting",
}

var fuelCodes = map[string]string{
	"benzine":       "B",
	"diesel":        "D",
	"lpg":           "L",
	"cng":           "C",
	"alcohol":       "M",
	"elektriciteit": "E",
	"waterstof":     "H",
}

var bodyCodes = map[string]string{
	"hatchback":       "C",
	"cabriolet":       "CO",
	"coupe":           "COU",
	"terreinvoertuig": "SUV",
	"stationwagen":    "SW",
	"sedan":           "S",
	"mpv":             "V",
	"gesloten opbouw": "T",
}

// MapRelevant extracts the draft fields from merged registry data. Values
// are normalised to the listing enums where a mapping is known.
func MapRelevant(plate string, data map[string]any) map[string]string {
	out := map[string]string{"licence": plate}
	titler := cases.Title(language.Dutch)

	for key, source := range relevantFields {
		raw, ok := data[source]
		if !ok || raw == nil {
			continue
		}
		value := strings.TrimSpace(fmt.Sprint(raw))
		if value == "" {
			continue
		}

		switch key {
		case "make", "model", "color":
			value = titler.String(strings.ToLower(value))
		case "manufacture_year":
			if len(value) < 4 {
				continue
			}
			value = value[:4]
		case "fuel_type":
			code, known := fuelCodes[strings.ToLower(value)]
			if !known {
				code = "O"
			}
			value = code
		case "body_type":
			code, known := bodyCodes[strings.ToLower(value)]
			if !known {
				code = "O"
			}
			value = code
		}
		out[key] = value
	}
	return out
}
