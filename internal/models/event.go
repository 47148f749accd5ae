package models

import "time"

// Event is a club event open for RSVP. MaxAttendees and RSVPDeadline are
// optional; when MaxAttendees is set the RSVP ledger never grows past it.
type Event struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Date         time.Time  `json:"date"`
	Venue        string     `json:"venue"`
	Image        string     `json:"image,omitempty"`
	MaxAttendees *int       `json:"max_attendees,omitempty"`
	RSVPDeadline *time.Time `json:"rsvp_deadline,omitempty"`
	CreatedBy    string     `json:"created_by"`
	CreatorName  string     `json:"creator_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EventRequest is the admin create/update payload. Date and RSVPDeadline
// are RFC3339 strings; parsing happens at the handler boundary.
type EventRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Venue        string `json:"venue" binding:"required"`
	Image        string `json:"image,omitempty"`
	MaxAttendees *int   `json:"max_attendees,omitempty"`
	RSVPDeadline string `json:"rsvp_deadline,omitempty"`
}
