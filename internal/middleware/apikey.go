package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/nexuite/sync-backend/pkg/logger"
	"github.com/nexuite/sync-backend/pkg/utils"
)

const apiKeyHeader = "api-key"

// RequireAPIKey gates a route behind the static shared secret trusted
// clients carry. The response is deliberately the same for a missing,
// malformed or wrong key. An empty configured secret rejects
// everything rather than letting everything through.
func RequireAPIKey(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get(apiKeyHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			logger.Warn("api_key_rejected", map[string]interface{}{
				"ip":   c.IP(),
				"path": c.Path(),
			})
			return utils.Error(c, fiber.StatusForbidden, "access denied")
		}
		return c.Next()
	}
}
