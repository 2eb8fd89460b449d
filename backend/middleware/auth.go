package middleware

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/vantage-club/clubgate/backend/utils"
)

const (
	GatewayKeyHeader = "X-Gateway-Key"
	AdminKeyHeader   = "X-Admin-Key"
)

// GatewayKeyRequired guards the payment confirmation endpoint with a shared
// key the gateway sends in a header.
func GatewayKeyRequired(key string) fiber.Handler {
	return keyRequired(GatewayKeyHeader, key, "payment gateway")
}

// AdminKeyRequired guards the membership admin endpoints.
func AdminKeyRequired(key string) fiber.Handler {
	return keyRequired(AdminKeyHeader, key, "admin")
}

func keyRequired(header, key, surface string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			// An unset key means the surface is not exposed at all.
			slog.Warn("Rejected request to unconfigured surface",
				slog.String("type", "http"),
				slog.String("surface", surface),
				slog.String("path", c.Path()),
				slog.String("ip", utils.GetIPAddress(c)))
			return utils.SendForbidden(c, "Endpoint not enabled")
		}

		provided := c.Get(header)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			slog.Warn("Rejected request with bad key",
				slog.String("type", "http"),
				slog.String("surface", surface),
				slog.String("path", c.Path()),
				slog.String("ip", utils.GetIPAddress(c)))
			return utils.SendUnauthorized(c, "Invalid or missing key")
		}

		return c.Next()
	}
}
