package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"

	notificationapi "github.com/tendant/simple-notify/pkg/notification/api"
)

// DefaultPrefix is where the notification API is mounted
const DefaultPrefix = "/notification"

// Config holds the handlers and auth needed to set up routes
type Config struct {
	Prefix             string
	NotificationHandle notificationapi.Handle

	// TokenAuth protects the notification routes when set
	TokenAuth *jwtauth.JWTAuth
}

// NewTokenAuth returns an HS256 verifier for secret, or nil when secret is
// empty.
func NewTokenAuth(secret string) *jwtauth.JWTAuth {
	if secret == "" {
		return nil
	}
	return jwtauth.New("HS256", []byte(secret), nil)
}

// SetupRoutes mounts the notification API on router
func SetupRoutes(router chi.Router, cfg Config) {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	router.Group(func(r chi.Router) {
		if cfg.TokenAuth != nil {
			r.Use(jwtauth.Verifier(cfg.TokenAuth))
			r.Use(jwtauth.Authenticator(cfg.TokenAuth))
		} else {
			slog.Warn("Notification routes are not authenticated", "prefix", prefix)
		}
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Mount(prefix, notificationapi.Handler(cfg.NotificationHandle))
	})

	router.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"service": "simple-notify"})
	})
}
