// Package phone normalises user-supplied phone numbers.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Numbers without a country prefix are read as Dutch.
const defaultRegion = "NL"

// ErrInvalid is returned for input that is not a dialable number.
var ErrInvalid = errors.New("invalid phone number")

// Normalize formats input as E.164. Blank input yields "" and no error so
// callers can use it to clear a stored number.
func Normalize(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", nil
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalid
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}
