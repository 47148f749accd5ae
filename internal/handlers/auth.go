package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/epochclub/club-api/internal/auth"
	"github.com/epochclub/club-api/internal/models"
)

// oauthStateCookie carries the CSRF state across the Google redirect.
const oauthStateCookie = "oauth_state"

// RegisterAuthRoutes registers the sign-up/sign-in endpoints and, when
// Google credentials are configured, the OAuth code flow.
//
// POST /api/auth/signup, POST /api/auth/signin
// GET  /auth/google, GET /auth/google/callback
func RegisterAuthRoutes(r gin.IRoutes, svc *auth.Service, google *auth.GoogleOAuth) {
	r.POST("/api/auth/signup", func(c *gin.Context) {
		var req models.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password (min 8 chars) required"})
			return
		}

		user, token, err := svc.SignUp(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrEmailExists) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			return
		}

		c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: user})
	})

	r.POST("/api/auth/signin", func(c *gin.Context) {
		var req models.SigninRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}

		user, token, err := svc.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
			return
		}

		c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user})
	})

	if google == nil {
		return
	}

	r.GET("/auth/google", func(c *gin.Context) {
		state := newState()
		c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
		c.Redirect(http.StatusTemporaryRedirect, google.AuthURL(state))
	})

	r.GET("/auth/google/callback", func(c *gin.Context) {
		want, err := c.Cookie(oauthStateCookie)
		if err != nil || want == "" || c.Query("state") != want {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
			return
		}
		c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

		profile, err := google.Exchange(c.Request.Context(), c.Query("code"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "google sign-in failed"})
			return
		}

		user, token, err := svc.LoginWithGoogle(c.Request.Context(), profile)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
			return
		}

		c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user})
	})
}

func newState() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
