package models

import "time"

// Podcast is an episode hosted on YouTube. YouTubeID is extracted from the
// submitted URL and Thumbnail is derived from it.
type Podcast struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	YouTubeURL  string    `json:"youtube_url"`
	YouTubeID   string    `json:"youtube_id"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	CreatedBy   string    `json:"created_by"`
	CreatorName string    `json:"creator_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PodcastRequest is the admin create/update payload.
type PodcastRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description,omitempty"`
	YouTubeURL  string `json:"youtube_url" binding:"required,url"`
	Duration    string `json:"duration,omitempty"`
}
