package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/epochclub/club-api/internal/auth"
	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
)

// RegisterEventRoutes registers public event reads and admin event writes.
//
// Public: GET /api/events (?upcoming=true), GET /api/events/:id
// Admin:  POST /api/events, PUT/DELETE /api/events/:id
func RegisterEventRoutes(public, admin gin.IRoutes, st *store.PostgresStore) {
	public.GET("/api/events", func(c *gin.Context) {
		upcoming := c.Query("upcoming") == "true"

		events, err := st.ListEvents(c.Request.Context(), upcoming, time.Now().UTC())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
			return
		}
		c.JSON(http.StatusOK, events)
	})

	public.GET("/api/events/:id", func(c *gin.Context) {
		event, err := st.EventByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch event"})
			return
		}
		c.JSON(http.StatusOK, event)
	})

	admin.POST("/api/events", func(c *gin.Context) {
		event, ok := eventFromRequest(c)
		if !ok {
			return
		}
		event.ID = uuid.NewString()
		event.CreatedBy = auth.UserID(c)

		if err := st.CreateEvent(c.Request.Context(), event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
			return
		}

		created, err := st.EventByID(c.Request.Context(), event.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch event"})
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	admin.PUT("/api/events/:id", func(c *gin.Context) {
		event, ok := eventFromRequest(c)
		if !ok {
			return
		}
		event.ID = c.Param("id")

		updated, err := st.UpdateEvent(c.Request.Context(), event)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	admin.DELETE("/api/events/:id", func(c *gin.Context) {
		err := st.DeleteEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "event deleted successfully"})
	})
}

// eventFromRequest binds and validates the admin payload. On failure it
// writes the error response and returns ok=false.
func eventFromRequest(c *gin.Context) (*models.Event, bool) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, description, date and venue are required"})
		return nil, false
	}

	date, err := parseRFC3339(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC3339"})
		return nil, false
	}

	event := &models.Event{
		Title:        req.Title,
		Description:  req.Description,
		Date:         date,
		Venue:        req.Venue,
		Image:        req.Image,
		MaxAttendees: req.MaxAttendees,
	}

	if req.MaxAttendees != nil && *req.MaxAttendees < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_attendees must be at least 1"})
		return nil, false
	}

	if req.RSVPDeadline != "" {
		deadline, err := parseRFC3339(req.RSVPDeadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rsvp_deadline must be RFC3339"})
			return nil, false
		}
		event.RSVPDeadline = &deadline
	}

	return event, true
}
