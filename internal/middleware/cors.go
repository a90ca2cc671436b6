package middleware

import (
	"net/url"
	"slices"
	"strings"

	"stockflow/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS returns the cross-origin policy for browser clients.
func CORS(cfg config.CORSConfig) fiber.Handler {
	// Requested headers are echoed back when AllowHeaders is empty.
	corsConfig := cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowCredentials: true,
		ExposeHeaders:    "Authorization,Content-Type,X-Total-Count",
		MaxAge:           3600,
	}
	if corsConfig.AllowOrigins == "" || slices.Contains(cfg.AllowedOrigins, "*") {
		// fiber refuses credentials together with the "*" origin, which is
		// also its default
		corsConfig.AllowOrigins = "*"
		corsConfig.AllowCredentials = false
	}
	if cfg.AllowLocalhost {
		corsConfig.AllowOriginsFunc = IsLocalOrigin
	}
	return cors.New(corsConfig)
}

// IsLocalOrigin reports whether origin is plain http on localhost or
// 127.0.0.1, on any port.
func IsLocalOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "http" {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1"
}
