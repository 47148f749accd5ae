package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
)

// RegisterProjectRoutes registers public project reads and admin writes.
//
// Public: GET /api/projects
// Admin:  POST /api/projects, PUT/DELETE /api/projects/:id
func RegisterProjectRoutes(public, admin gin.IRoutes, st *store.PostgresStore) {
	public.GET("/api/projects", func(c *gin.Context) {
		projects, err := st.ListProjects(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
			return
		}
		if projects == nil {
			projects = []*models.Project{}
		}
		c.JSON(http.StatusOK, projects)
	})

	admin.POST("/api/projects", func(c *gin.Context) {
		project, ok := projectFromRequest(c)
		if !ok {
			return
		}
		project.ID = uuid.NewString()

		if err := st.CreateProject(c.Request.Context(), project); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
			return
		}

		created, err := st.ProjectByID(c.Request.Context(), project.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch project"})
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	admin.PUT("/api/projects/:id", func(c *gin.Context) {
		project, ok := projectFromRequest(c)
		if !ok {
			return
		}
		project.ID = c.Param("id")

		updated, err := st.UpdateProject(c.Request.Context(), project)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	admin.DELETE("/api/projects/:id", func(c *gin.Context) {
		if err := st.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
	})
}

func projectFromRequest(c *gin.Context) (*models.Project, bool) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and description are required"})
		return nil, false
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		GithubURL:   req.GithubURL,
		LiveURL:     req.LiveURL,
		Image:       req.Image,
		Featured:    req.Featured,
	}
	if project.TechStack == nil {
		project.TechStack = []string{}
	}
	return project, true
}
