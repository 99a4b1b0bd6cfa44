package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jumush/backend/internal/config"
	"github.com/jumush/backend/internal/core/ports"
	"github.com/jumush/backend/internal/domain"
)

const PrincipalKey = "principal"

// RequireAuth resolves the bearer token to a Principal and stores it in
// locals. Identity lives with the account row; everything downstream only
// sees the Principal.
func RequireAuth(accounts ports.AccountRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing credentials",
			})
		}

		account, err := accounts.GetByToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid credentials",
			})
		}

		c.Locals(PrincipalKey, domain.Principal{
			AccountID: account.ID,
			Role:      account.Role,
			RegionID:  account.RegionID,
			Verified:  account.Verified,
		})
		return c.Next()
	}
}

// Principal reads the resolved identity set by RequireAuth.
func Principal(c *fiber.Ctx) domain.Principal {
	principal, _ := c.Locals(PrincipalKey).(domain.Principal)
	return principal
}

// AdminAuth guards administrative endpoints (top-up, verification) with
// the static admin API key.
func AdminAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := cfg.Auth.AdminAPIKey
		if apiKey == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin API disabled",
			})
		}

		headerToken := c.Get("X-Admin-Token")
		if headerToken == "" {
			headerToken = bearerToken(c)
		}

		if headerToken != apiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
