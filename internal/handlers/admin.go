package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
)

// RegisterAdminRoutes registers the back-office user and stats endpoints.
//
// GET   /api/admin/users       accounts + population stats
// PATCH /api/admin/users/:id   role change
// GET   /api/admin/stats       content counters for the dashboard
func RegisterAdminRoutes(admin gin.IRoutes, st *store.PostgresStore) {
	admin.GET("/api/admin/users", func(c *gin.Context) {
		users, err := st.ListUsers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
			return
		}
		if users == nil {
			users = []*models.User{}
		}

		stats := models.UserStats{Total: len(users)}
		monthAgo := time.Now().AddDate(0, -1, 0)
		for _, u := range users {
			switch u.Role {
			case models.RoleAdmin:
				stats.Admins++
			case models.RoleMember:
				stats.Members++
			}
			if u.LastLogin != nil && u.LastLogin.After(monthAgo) {
				stats.ActiveThisMonth++
			}
		}

		c.JSON(http.StatusOK, gin.H{"users": users, "stats": stats})
	})

	admin.PATCH("/api/admin/users/:id", func(c *gin.Context) {
		var req struct {
			Role string `json:"role" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role required"})
			return
		}
		if req.Role != models.RoleAdmin && req.Role != models.RoleMember {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}

		user, err := st.UpdateUserRole(c.Request.Context(), c.Param("id"), req.Role)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	})

	admin.GET("/api/admin/stats", func(c *gin.Context) {
		stats, err := st.SiteStats(c.Request.Context(), time.Now().UTC())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch admin stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})
}
