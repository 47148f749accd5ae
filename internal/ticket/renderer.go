// Package ticket renders RSVP entries into downloadable PDF tickets and
// mints ticket identifiers.
package ticket

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// ErrInvalidInput is returned when a required ticket field is missing.
var ErrInvalidInput = errors.New("missing required ticket data")

// Data is everything printed on a ticket. All fields are required.
type Data struct {
	EventTitle    string
	EventDate     time.Time
	EventVenue    string
	AttendeeName  string
	AttendeeEmail string
	TicketID      string
}

// qrPayload is the QR code content: self-contained, so a scanner at the
// venue door can verify the ticket offline.
type qrPayload struct {
	TicketID string `json:"ticketId"`
	Event    string `json:"event"`
	Attendee string `json:"attendee"`
	Email    string `json:"email"`
	Date     string `json:"date"`
	Venue    string `json:"venue"`
}

// Renderer produces ticket PDFs on demand. Rendering is never cached.
type Renderer struct {
	log *slog.Logger

	// encodeQR is swapped out in tests to exercise the fallback path.
	encodeQR func(content string, size int) ([]byte, error)
}

// NewRenderer builds a renderer logging faults to log.
func NewRenderer(log *slog.Logger) *Renderer {
	return &Renderer{
		log: log,
		encodeQR: func(content string, size int) ([]byte, error) {
			return qrcode.Encode(content, qrcode.Medium, size)
		},
	}
}

// Render produces the PDF. A QR encoding failure degrades to printing the
// raw ticket id; only a failure of the document itself is an error.
func (r *Renderer) Render(d Data) ([]byte, error) {
	if d.EventTitle == "" || d.EventVenue == "" || d.AttendeeName == "" ||
		d.AttendeeEmail == "" || d.TicketID == "" || d.EventDate.IsZero() {
		return nil, ErrInvalidInput
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Event Ticket - %s", d.EventTitle), false)
	pdf.SetAuthor("Epoch Events", false)
	pdf.AddPage()

	// Header band.
	pdf.SetFillColor(30, 64, 175)
	pdf.Rect(0, 0, 210, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetXY(15, 10)
	pdf.CellFormat(80, 12, "EPOCH", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(15, 22)
	pdf.CellFormat(80, 6, "EVENTS", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(120, 10)
	pdf.CellFormat(75, 8, "EVENT TICKET", "", 0, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(120, 20)
	pdf.CellFormat(75, 6, "#"+d.TicketID, "", 0, "R", false, 0, "")

	// Event title.
	pdf.SetTextColor(55, 65, 81)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(15, 50)
	pdf.MultiCell(180, 9, d.EventTitle, "", "L", false)

	// Date and venue boxes.
	boxY := pdf.GetY() + 6
	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(229, 231, 235)
	pdf.Rect(15, boxY, 85, 26, "FD")
	pdf.Rect(110, boxY, 85, 26, "FD")

	pdf.SetTextColor(30, 64, 175)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(19, boxY+4)
	pdf.CellFormat(77, 4, "DATE & TIME", "", 0, "L", false, 0, "")
	pdf.SetXY(114, boxY+4)
	pdf.CellFormat(77, 4, "VENUE", "", 0, "L", false, 0, "")

	pdf.SetTextColor(55, 65, 81)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(19, boxY+10)
	pdf.CellFormat(77, 6, d.EventDate.Format("Mon, Jan 2 2006"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(19, boxY+17)
	pdf.CellFormat(77, 5, d.EventDate.Format("3:04 PM MST"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(114, boxY+12)
	pdf.CellFormat(77, 6, d.EventVenue, "", 0, "L", false, 0, "")

	// Attendee box on the left, QR (or its text fallback) on the right.
	attY := boxY + 34
	pdf.SetFillColor(240, 249, 255)
	pdf.SetDrawColor(14, 165, 233)
	pdf.Rect(15, attY, 120, 32, "FD")
	pdf.SetTextColor(12, 74, 110)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(20, attY+5)
	pdf.CellFormat(110, 6, "ATTENDEE INFORMATION", "", 0, "L", false, 0, "")
	pdf.SetTextColor(55, 65, 81)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, attY+13)
	pdf.CellFormat(110, 5, "Name: "+d.AttendeeName, "", 0, "L", false, 0, "")
	pdf.SetXY(20, attY+20)
	pdf.CellFormat(110, 5, "Email: "+d.AttendeeEmail, "", 0, "L", false, 0, "")

	r.drawCode(pdf, d, attY)

	// Instructions.
	insY := attY + 48
	pdf.SetTextColor(30, 64, 175)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(15, insY)
	pdf.CellFormat(180, 6, "IMPORTANT INSTRUCTIONS", "", 0, "L", false, 0, "")
	pdf.SetTextColor(55, 65, 81)
	pdf.SetFont("Helvetica", "", 9)
	for i, line := range []string{
		"- Present this ticket and a valid photo ID at the venue entrance",
		"- Arrive at least 15 minutes before the event start time",
		"- This ticket is non-transferable and non-refundable",
		"- Keep this ticket safe - lost tickets cannot be replaced",
	} {
		pdf.SetXY(15, insY+9+float64(i)*6)
		pdf.CellFormat(180, 5, line, "", 0, "L", false, 0, "")
	}

	// Footer.
	pdf.SetTextColor(156, 163, 175)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(15, 275)
	pdf.CellFormat(180, 4, "Generated by the Epoch Club Management System", "", 0, "C", false, 0, "")
	pdf.SetXY(15, 280)
	pdf.CellFormat(180, 4, "Generated: "+time.Now().Format("Jan 2, 2006 3:04 PM"), "", 0, "C", false, 0, "")

	// Page border.
	pdf.SetDrawColor(30, 64, 175)
	pdf.SetLineWidth(0.6)
	pdf.Rect(8, 8, 194, 281, "D")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCode places the QR code, or the ticket id as plain text when QR
// encoding fails. A scannerless ticket still verifies manually.
func (r *Renderer) drawCode(pdf *fpdf.Fpdf, d Data, y float64) {
	payload, err := json.Marshal(qrPayload{
		TicketID: d.TicketID,
		Event:    d.EventTitle,
		Attendee: d.AttendeeName,
		Email:    d.AttendeeEmail,
		Date:     d.EventDate.Format(time.RFC3339),
		Venue:    d.EventVenue,
	})
	var png []byte
	if err == nil {
		png, err = r.encodeQR(string(payload), 256)
	}
	if err != nil {
		r.log.Warn("qr encoding failed, falling back to text", "ticket_id", d.TicketID, "error", err)
		pdf.SetFillColor(254, 226, 226)
		pdf.SetDrawColor(239, 68, 68)
		pdf.Rect(145, y, 50, 32, "FD")
		pdf.SetTextColor(220, 38, 38)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetXY(148, y+6)
		pdf.CellFormat(44, 5, "TICKET ID", "", 0, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(148, y+14)
		pdf.MultiCell(44, 4, d.TicketID, "", "C", false)
		return
	}

	name := "qr-" + d.TicketID
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	pdf.ImageOptions(name, 150, y, 40, 40, false, opts, 0, "")
	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(150, y+41)
	pdf.CellFormat(40, 4, "Scan for verification", "", 0, "C", false, 0, "")
}
