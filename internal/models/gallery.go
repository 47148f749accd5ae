package models

import "time"

// GalleryImage is one photo in a gallery.
type GalleryImage struct {
	URL     string `json:"url" binding:"required"`
	Caption string `json:"caption,omitempty"`
}

// Gallery is a photo collection from a past event.
type Gallery struct {
	ID          string         `json:"id"`
	EventName   string         `json:"event_name"`
	EventDate   time.Time      `json:"event_date"`
	Description string         `json:"description,omitempty"`
	Images      []GalleryImage `json:"images"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// GalleryRequest is the admin create/update payload. EventDate is an
// RFC3339 string.
type GalleryRequest struct {
	EventName   string         `json:"event_name" binding:"required"`
	EventDate   string         `json:"event_date" binding:"required"`
	Description string         `json:"description,omitempty"`
	Images      []GalleryImage `json:"images" binding:"required,min=1,dive"`
}
