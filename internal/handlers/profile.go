package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/epochclub/club-api/internal/auth"
	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
)

// RegisterProfileRoutes registers self-service account endpoints.
//
// PUT /api/profile   rename the caller's account
func RegisterProfileRoutes(authed gin.IRoutes, st *store.PostgresStore) {
	authed.PUT("/api/profile", func(c *gin.Context) {
		var req models.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		user, err := st.UpdateUserProfile(c.Request.Context(), auth.Email(c), name)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully", "user": user})
	})
}
