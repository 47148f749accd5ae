package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epochclub/club-api/internal/auth"
	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/rsvp"
	"github.com/epochclub/club-api/internal/ticket"
)

// RegisterRSVPRoutes registers the ticket-issuance surface.
//
// Authenticated:
//
//	POST /api/rsvps              submit (idempotent: 201 new, 200 existing)
//	GET  /api/rsvps              caller's entries, deleted events filtered
//	GET  /api/rsvps/:id/ticket   PDF download, owner or admin
//
// Admin:
//
//	GET /api/admin/events/:id/rsvps   entries + attending count
func RegisterRSVPRoutes(authed, admin gin.IRoutes, wf *rsvp.Workflow, renderer *ticket.Renderer, log *slog.Logger) {
	authed.POST("/api/rsvps", func(c *gin.Context) {
		var req models.RSVPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_id required"})
			return
		}

		entry, created, err := wf.Submit(c.Request.Context(), auth.Email(c), req.EventID)
		if err != nil {
			writeRSVPError(c, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, entry)
	})

	authed.GET("/api/rsvps", func(c *gin.Context) {
		entries, err := wf.ListForUser(c.Request.Context(), auth.Email(c))
		if err != nil {
			writeRSVPError(c, err)
			return
		}
		if entries == nil {
			entries = []*models.RSVP{}
		}
		c.JSON(http.StatusOK, entries)
	})

	authed.GET("/api/rsvps/:id/ticket", func(c *gin.Context) {
		entry, err := wf.TicketEntry(c.Request.Context(), c.Param("id"), auth.Email(c), auth.IsAdmin(c))
		if err != nil {
			writeRSVPError(c, err)
			return
		}

		pdf, err := renderer.Render(ticket.Data{
			EventTitle:    entry.Event.Title,
			EventDate:     entry.Event.Date,
			EventVenue:    entry.Event.Venue,
			AttendeeName:  entry.User.Name,
			AttendeeEmail: entry.User.Email,
			TicketID:      entry.TicketID,
		})
		if err != nil {
			// The one genuine server fault in this flow.
			log.Error("ticket render failed", "rsvp_id", entry.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate ticket, please try again"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ticket-%s.pdf"`, entry.TicketID))
		c.Data(http.StatusOK, "application/pdf", pdf)
	})

	admin.GET("/api/admin/events/:id/rsvps", func(c *gin.Context) {
		list, err := wf.ListForEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeRSVPError(c, err)
			return
		}
		if list.RSVPs == nil {
			list.RSVPs = []*models.RSVP{}
		}
		c.JSON(http.StatusOK, list)
	})
}

// writeRSVPError maps workflow errors onto HTTP responses. Validation
// failures are expected and returned structured; anything unmapped is a
// server fault.
func writeRSVPError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rsvp.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, rsvp.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, rsvp.ErrRSVPNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "rsvp not found"})
	case errors.Is(err, rsvp.ErrDeadlinePassed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "rsvp deadline has passed"})
	case errors.Is(err, rsvp.ErrEventFull):
		c.JSON(http.StatusBadRequest, gin.H{"error": "event is full"})
	case errors.Is(err, rsvp.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process rsvp"})
	}
}
