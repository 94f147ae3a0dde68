package model

import "time"

// Picture represents a picture attached to a fob. Either URL (external link)
// or StorageKey (object in the picture bucket) is set. Pending pictures await
// moderation.
type Picture struct {
	ID         string
	FobID      string
	UserID     string
	URL        string
	StorageKey string
	Pending    bool
	CreatedAt  time.Time
}

// CreatePictureRequest registers a picture by URL or by the storage key
// handed out with an upload URL.
type CreatePictureRequest struct {
	URL        string `json:"url"`
	StorageKey string `json:"storage_key"`
}

// UpdatePictureStatusRequest changes a picture's moderation flag.
type UpdatePictureStatusRequest struct {
	Pending bool `json:"pending"`
}

// PictureResponse represents a picture in API responses. URL is either the
// registered external URL or a presigned download link for stored objects.
type PictureResponse struct {
	ID        string    `json:"id"`
	FobID     string    `json:"fob_id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	Pending   bool      `json:"pending"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadURLResponse carries a presigned PUT URL and the storage key to
// register once the upload completes.
type UploadURLResponse struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"storage_key"`
}
