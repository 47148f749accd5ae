package models

import "time"

// RSVP is one ledger entry: its existence means the user is attending the
// event. TicketID is minted once at creation and never changes.
//
// Event and User are display joins populated by list/fetch queries; Event is
// nil when the referenced event has since been deleted.
type RSVP struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	TicketID  string    `json:"ticket_id"`
	CreatedAt time.Time `json:"created_at"`

	Event *Event `json:"event,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// RSVPRequest is the POST /api/rsvps payload.
type RSVPRequest struct {
	EventID string `json:"event_id" binding:"required"`
}

// EventRSVPList is the admin per-event view: every entry with user details
// plus the attending total.
type EventRSVPList struct {
	RSVPs []*RSVP `json:"rsvps"`
	Stats struct {
		Attending int `json:"attending"`
		Total     int `json:"total"`
	} `json:"stats"`
}
