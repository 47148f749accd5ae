package config

import (
	"errors"
	"os"
	"strings"
)

// Config contains runtime configuration required by the service.
type Config struct {
	DBURL      string
	ListenAddr string
	JWTSecret  []byte

	// AdminEmails is consulted once at account creation: a new account
	// whose email appears here is made an admin. It is passed explicitly
	// into the auth service, never read from the environment again.
	AdminEmails []string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// Load reads required values from environment variables.
// ADMIN_EMAILS format: "a@example.com,b@example.com"
func Load() (Config, error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return Config{}, errors.New("DB_URL required")
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	return Config{
		DBURL:              dbURL,
		ListenAddr:         listenAddr,
		JWTSecret:          []byte(jwtSecret),
		AdminEmails:        ParseAdminEmails(os.Getenv("ADMIN_EMAILS")),
		GoogleClientID:     strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleClientSecret: strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET")),
		GoogleRedirectURL:  strings.TrimSpace(os.Getenv("GOOGLE_REDIRECT_URL")),
	}, nil
}

// ParseAdminEmails splits a comma-separated allowlist, dropping empty items.
func ParseAdminEmails(raw string) []string {
	var emails []string
	for _, e := range strings.Split(raw, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}
