package fob

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Variant is the closed set of fob kinds. It is derived once from an ID
// prefix (or a request type field) and threaded explicitly through the call
// chain instead of being re-derived from strings at each layer.
type Variant int

const (
	Unknown Variant = iota
	Fountain
	Bathroom
)

var ErrUnknownVariant = errors.New("unknown fob variant")

// ID prefixes. Child resources (ratings, pictures) inherit the parent fob's
// variant in their own prefix.
const (
	fountainPrefix = "ftn-"
	bathroomPrefix = "bth-"

	fountainRatingPrefix = "ftnrat-"
	bathroomRatingPrefix = "bthrat-"

	fountainPicturePrefix = "ftnpic-"
	bathroomPicturePrefix = "bthpic-"
)

func (v Variant) String() string {
	switch v {
	case Fountain:
		return "fountain"
	case Bathroom:
		return "bathroom"
	default:
		return "unknown"
	}
}

// VariantFromString maps a request-supplied type name to a Variant.
func VariantFromString(s string) Variant {
	switch s {
	case "fountain":
		return Fountain
	case "bathroom":
		return Bathroom
	default:
		return Unknown
	}
}

// VariantOf determines a fob's variant purely from its ID structure: one of
// the two fixed prefixes followed by a UUID. Anything else is Unknown and all
// dependent validation must fail closed.
func VariantOf(id string) Variant {
	return classify(id, fountainPrefix, bathroomPrefix)
}

// RatingVariantOf determines a rating's variant from its ID structure.
func RatingVariantOf(id string) Variant {
	return classify(id, fountainRatingPrefix, bathroomRatingPrefix)
}

// PictureVariantOf determines a picture's variant from its ID structure.
func PictureVariantOf(id string) Variant {
	return classify(id, fountainPicturePrefix, bathroomPicturePrefix)
}

func classify(id, fountain, bathroom string) Variant {
	if rest, ok := strings.CutPrefix(id, fountain); ok && isUUID(rest) {
		return Fountain
	}
	if rest, ok := strings.CutPrefix(id, bathroom); ok && isUUID(rest) {
		return Bathroom
	}
	return Unknown
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// MintID mints a new fob ID carrying the variant's prefix.
func MintID(v Variant) (string, error) {
	return mint(v, fountainPrefix, bathroomPrefix)
}

// MintRatingID mints a new rating ID inheriting the parent fob's variant.
func MintRatingID(v Variant) (string, error) {
	return mint(v, fountainRatingPrefix, bathroomRatingPrefix)
}

// MintPictureID mints a new picture ID inheriting the parent fob's variant.
func MintPictureID(v Variant) (string, error) {
	return mint(v, fountainPicturePrefix, bathroomPicturePrefix)
}

func mint(v Variant, fountain, bathroom string) (string, error) {
	switch v {
	case Fountain:
		return fountain + uuid.NewString(), nil
	case Bathroom:
		return bathroom + uuid.NewString(), nil
	default:
		return "", ErrUnknownVariant
	}
}
