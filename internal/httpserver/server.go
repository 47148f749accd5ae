package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/epochclub/club-api/internal/auth"
	"github.com/epochclub/club-api/internal/config"
	"github.com/epochclub/club-api/internal/handlers"
	"github.com/epochclub/club-api/internal/rsvp"
	"github.com/epochclub/club-api/internal/store"
	"github.com/epochclub/club-api/internal/ticket"
)

// NewRouter wires public content reads, the auth endpoints, the
// authenticated member surface (RSVPs, tickets, profile) and the admin
// back-office.
func NewRouter(cfg config.Config, st *store.PostgresStore, log *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	authSvc := auth.NewService(st, cfg.JWTSecret, cfg.AdminEmails)
	google := auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	workflow := rsvp.New(st)
	renderer := ticket.NewRenderer(log)

	public := r.Group("/")

	authed := r.Group("/")
	authed.Use(auth.RequireUser(cfg.JWTSecret))

	admin := r.Group("/")
	admin.Use(auth.RequireUser(cfg.JWTSecret), auth.RequireAdmin())

	handlers.RegisterAuthRoutes(public, authSvc, google)
	handlers.RegisterEventRoutes(public, admin, st)
	handlers.RegisterRSVPRoutes(authed, admin, workflow, renderer, log)
	handlers.RegisterBlogRoutes(public, admin, st)
	handlers.RegisterProjectRoutes(public, admin, st)
	handlers.RegisterPodcastRoutes(public, admin, st)
	handlers.RegisterGalleryRoutes(public, admin, st)
	handlers.RegisterProfileRoutes(authed, st)
	handlers.RegisterAdminRoutes(admin, st)

	return r
}
