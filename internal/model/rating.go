package model

import "time"

// Rating represents a user's rating of a fob. Details is the variant-shaped
// payload matching the parent fob's variant, stored as JSON.
type Rating struct {
	ID        string
	FobID     string
	UserID    string
	Comment   string
	Details   map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateRatingRequest represents a rating creation request against a fob.
type CreateRatingRequest struct {
	Comment string         `json:"comment"`
	Details map[string]any `json:"details"`
}

// UpdateRatingRequest represents a rating update by its owner.
type UpdateRatingRequest struct {
	Comment string         `json:"comment"`
	Details map[string]any `json:"details"`
}

// RatingResponse represents a rating in API responses.
type RatingResponse struct {
	ID        string         `json:"id"`
	FobID     string         `json:"fob_id"`
	UserID    string         `json:"user_id"`
	Comment   string         `json:"comment"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

// RatingToResponse converts a Rating to its API representation.
func RatingToResponse(rt *Rating) RatingResponse {
	return RatingResponse{
		ID:        rt.ID,
		FobID:     rt.FobID,
		UserID:    rt.UserID,
		Comment:   rt.Comment,
		Details:   rt.Details,
		CreatedAt: rt.CreatedAt,
	}
}
