package model

import (
	"encoding/json"
	"time"
)

// Fob represents a public amenity: a drinking fountain or a bathroom. The
// variant is carried by the ID prefix, not by a stored type tag; Info holds
// the variant-specific payload.
type Fob struct {
	ID        string
	OwnerID   string
	Name      string
	Lat       float64
	Lng       float64
	Info      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FountainInfo is the variant-specific payload for fountains.
type FountainInfo struct {
	BottleFiller bool `json:"bottle_filler"`
}

// BathroomInfo is the variant-specific payload for bathrooms.
type BathroomInfo struct {
	Gender           string `json:"gender"`
	BabyChanger      bool   `json:"baby_changer"`
	SanitaryProducts bool   `json:"sanitary_products"`
}

// CreateFobRequest represents a fob creation request. Type selects the
// variant ("fountain" or "bathroom") and Info must match its shape.
type CreateFobRequest struct {
	Type string          `json:"type"`
	Name string          `json:"name"`
	Lat  float64         `json:"lat"`
	Lng  float64         `json:"lng"`
	Info json.RawMessage `json:"info"`
}

// UpdateFobRequest represents a fob update request. The variant cannot
// change. Coordinates are pointers so an absent field leaves the stored value
// untouched; zero is a valid latitude and longitude.
type UpdateFobRequest struct {
	Name string          `json:"name"`
	Lat  *float64        `json:"lat"`
	Lng  *float64        `json:"lng"`
	Info json.RawMessage `json:"info"`
}

// FobResponse represents a fob in API responses.
type FobResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OwnerID    string          `json:"owner_id"`
	Name       string          `json:"name"`
	Lat        float64         `json:"lat"`
	Lng        float64         `json:"lng"`
	Info       json.RawMessage `json:"info"`
	DistanceKm *float64        `json:"distance_km,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
