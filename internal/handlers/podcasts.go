package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/epochclub/club-api/internal/auth"
	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
)

// youtubeIDPattern matches the 11-character video id in the URL shapes
// users actually paste: watch?v=, youtu.be/, embed/ and shorts/.
var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractYouTubeID pulls the video id out of a YouTube URL, or "" when the
// URL is not recognizable.
func ExtractYouTubeID(url string) string {
	m := youtubeIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// RegisterPodcastRoutes registers public podcast reads and admin writes.
//
// Public: GET /api/podcasts
// Admin:  POST /api/podcasts, PUT/DELETE /api/podcasts/:id
func RegisterPodcastRoutes(public, admin gin.IRoutes, st *store.PostgresStore) {
	public.GET("/api/podcasts", func(c *gin.Context) {
		podcasts, err := st.ListPodcasts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch podcasts"})
			return
		}
		if podcasts == nil {
			podcasts = []*models.Podcast{}
		}
		c.JSON(http.StatusOK, podcasts)
	})

	admin.POST("/api/podcasts", func(c *gin.Context) {
		podcast, ok := podcastFromRequest(c)
		if !ok {
			return
		}
		podcast.ID = uuid.NewString()
		podcast.CreatedBy = auth.UserID(c)

		if err := st.CreatePodcast(c.Request.Context(), podcast); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create podcast"})
			return
		}

		created, err := st.PodcastByID(c.Request.Context(), podcast.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch podcast"})
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	admin.PUT("/api/podcasts/:id", func(c *gin.Context) {
		podcast, ok := podcastFromRequest(c)
		if !ok {
			return
		}
		podcast.ID = c.Param("id")

		updated, err := st.UpdatePodcast(c.Request.Context(), podcast)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "podcast not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update podcast"})
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	admin.DELETE("/api/podcasts/:id", func(c *gin.Context) {
		if err := st.DeletePodcast(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "podcast not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete podcast"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "podcast deleted successfully"})
	})
}

func podcastFromRequest(c *gin.Context) (*models.Podcast, bool) {
	var req models.PodcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and youtube_url are required"})
		return nil, false
	}

	youtubeID := ExtractYouTubeID(req.YouTubeURL)
	if youtubeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid YouTube URL"})
		return nil, false
	}

	return &models.Podcast{
		Title:       req.Title,
		Description: req.Description,
		YouTubeURL:  req.YouTubeURL,
		YouTubeID:   youtubeID,
		Thumbnail:   "https://img.youtube.com/vi/" + youtubeID + "/maxresdefault.jpg",
		Duration:    req.Duration,
	}, true
}
