package fob

import (
	"encoding/json"
	"errors"
)

// InvalidDetailsMessage is the exact client-visible message for a rejected
// rating details payload.
const InvalidDetailsMessage = "Invalid rating detail value(s)!"

var ErrInvalidDetails = errors.New("invalid rating detail values")

// Rating detail field sets per variant. Every field must be an integer in
// [1,5]; validation is all-or-nothing per payload.
var (
	fountainRatingFields = []string{"pressure", "taste", "temperature"}
	bathroomRatingFields = []string{"cleanliness", "decor", "drying", "privacy", "washing"}
)

// RatingFields returns the detail field names for a variant.
func RatingFields(v Variant) []string {
	switch v {
	case Fountain:
		return fountainRatingFields
	case Bathroom:
		return bathroomRatingFields
	default:
		return nil
	}
}

// ValidateDetails checks a rating details payload against the variant's
// schema. Any field missing, non-numeric, non-integer, or outside [1,5]
// rejects the whole payload with a single ErrInvalidDetails; extra fields are
// ignored. An Unknown variant always rejects.
func ValidateDetails(v Variant, details map[string]any) error {
	fields := RatingFields(v)
	if fields == nil {
		return ErrInvalidDetails
	}

	for _, f := range fields {
		val, ok := details[f]
		if !ok {
			return ErrInvalidDetails
		}
		n, ok := intValue(val)
		if !ok || n < 1 || n > 5 {
			return ErrInvalidDetails
		}
	}

	return nil
}

// intValue reports whether val is an integer-valued number and returns it.
// JSON decoding produces float64, but tests and callers may supply native ints.
func intValue(val any) (int64, bool) {
	switch n := val.(type) {
	case float64:
		i := int64(n)
		return i, float64(i) == n
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
