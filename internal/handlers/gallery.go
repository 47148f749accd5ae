package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
)

// RegisterGalleryRoutes registers public gallery reads and admin writes.
//
// Public: GET /api/gallery, GET /api/gallery/:id
// Admin:  POST /api/gallery, PUT/DELETE /api/gallery/:id
func RegisterGalleryRoutes(public, admin gin.IRoutes, st *store.PostgresStore) {
	public.GET("/api/gallery", func(c *gin.Context) {
		galleries, err := st.ListGalleries(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch galleries"})
			return
		}
		if galleries == nil {
			galleries = []*models.Gallery{}
		}
		c.JSON(http.StatusOK, galleries)
	})

	public.GET("/api/gallery/:id", func(c *gin.Context) {
		gallery, err := st.GalleryByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "gallery not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch gallery"})
			return
		}
		c.JSON(http.StatusOK, gallery)
	})

	admin.POST("/api/gallery", func(c *gin.Context) {
		gallery, ok := galleryFromRequest(c)
		if !ok {
			return
		}
		gallery.ID = uuid.NewString()

		if err := st.CreateGallery(c.Request.Context(), gallery); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create gallery"})
			return
		}

		created, err := st.GalleryByID(c.Request.Context(), gallery.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch gallery"})
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	admin.PUT("/api/gallery/:id", func(c *gin.Context) {
		gallery, ok := galleryFromRequest(c)
		if !ok {
			return
		}
		gallery.ID = c.Param("id")

		updated, err := st.UpdateGallery(c.Request.Context(), gallery)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "gallery not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update gallery"})
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	admin.DELETE("/api/gallery/:id", func(c *gin.Context) {
		if err := st.DeleteGallery(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "gallery not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete gallery"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "gallery deleted successfully"})
	})
}

func galleryFromRequest(c *gin.Context) (*models.Gallery, bool) {
	var req models.GalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_name, event_date and at least one image are required"})
		return nil, false
	}

	eventDate, err := parseRFC3339(req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_date must be RFC3339"})
		return nil, false
	}

	return &models.Gallery{
		EventName:   req.EventName,
		EventDate:   eventDate,
		Description: req.Description,
		Images:      req.Images,
	}, true
}
