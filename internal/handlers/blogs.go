package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/epochclub/club-api/internal/auth"
	"github.com/epochclub/club-api/internal/models"
	"github.com/epochclub/club-api/internal/store"
)

// RegisterBlogRoutes registers public blog reads and admin blog writes.
//
// Public: GET /api/blogs (?published=true&page=&limit=), GET /api/blogs/:id,
//
//	GET /api/blogs/slug/:slug
//
// Admin:  POST /api/blogs, PUT/DELETE /api/blogs/:id
func RegisterBlogRoutes(public, admin gin.IRoutes, st *store.PostgresStore) {
	public.GET("/api/blogs", func(c *gin.Context) {
		publishedOnly := c.Query("published") == "true"
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 10
		}

		blogs, total, err := st.ListBlogs(c.Request.Context(), publishedOnly, (page-1)*limit, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch blogs"})
			return
		}
		if blogs == nil {
			blogs = []*models.Blog{}
		}

		resp := models.BlogPage{Blogs: blogs}
		resp.Pagination.Page = page
		resp.Pagination.Limit = limit
		resp.Pagination.Total = total
		resp.Pagination.Pages = int((total + int64(limit) - 1) / int64(limit))
		c.JSON(http.StatusOK, resp)
	})

	public.GET("/api/blogs/:id", func(c *gin.Context) {
		blog, err := st.BlogByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeBlogError(c, err, "failed to fetch blog")
			return
		}
		c.JSON(http.StatusOK, blog)
	})

	public.GET("/api/blogs/slug/:slug", func(c *gin.Context) {
		blog, err := st.BlogBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeBlogError(c, err, "failed to fetch blog")
			return
		}
		c.JSON(http.StatusOK, blog)
	})

	admin.POST("/api/blogs", func(c *gin.Context) {
		var req models.BlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title, content and excerpt are required"})
			return
		}

		blogSlug := req.Slug
		if blogSlug == "" {
			blogSlug = slug.Make(req.Title)
		}
		// De-duplicate the derived slug with a timestamp suffix.
		taken, err := st.SlugTaken(c.Request.Context(), blogSlug)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create blog"})
			return
		}
		if taken {
			blogSlug = fmt.Sprintf("%s-%d", blogSlug, time.Now().UnixMilli())
		}

		blog := &models.Blog{
			ID:            uuid.NewString(),
			Title:         req.Title,
			Slug:          blogSlug,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			FeaturedImage: req.FeaturedImage,
			AuthorID:      auth.UserID(c),
			Published:     req.Published,
			Tags:          req.Tags,
		}
		if blog.Tags == nil {
			blog.Tags = []string{}
		}

		if err := st.CreateBlog(c.Request.Context(), blog); err != nil {
			if errors.Is(err, store.ErrSlugExists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "slug already in use"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create blog"})
			return
		}

		created, err := st.BlogByID(c.Request.Context(), blog.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch blog"})
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	admin.PUT("/api/blogs/:id", func(c *gin.Context) {
		var req models.BlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title, content and excerpt are required"})
			return
		}

		blogSlug := req.Slug
		if blogSlug == "" {
			blogSlug = slug.Make(req.Title)
		}

		blog := &models.Blog{
			ID:            c.Param("id"),
			Title:         req.Title,
			Slug:          blogSlug,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			FeaturedImage: req.FeaturedImage,
			Published:     req.Published,
			Tags:          req.Tags,
		}
		if blog.Tags == nil {
			blog.Tags = []string{}
		}

		updated, err := st.UpdateBlog(c.Request.Context(), blog)
		if err != nil {
			if errors.Is(err, store.ErrSlugExists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "slug already in use"})
				return
			}
			writeBlogError(c, err, "failed to update blog")
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	admin.DELETE("/api/blogs/:id", func(c *gin.Context) {
		if err := st.DeleteBlog(c.Request.Context(), c.Param("id")); err != nil {
			writeBlogError(c, err, "failed to delete blog")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "blog deleted successfully"})
	})
}

func writeBlogError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "blog not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
