package handlers

import (
	applog "campusmart/internal/log"
	"campusmart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireUser enforces a logged-in session.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		c.Locals("user", u)
		c.Locals("user_id", u.ID)
		return c.Next()
	}
}

// RequireAdmin additionally checks the admin flag; non-admins are rejected
// with no state change.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || !u.IsAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return jsonErr(c, fiber.StatusForbidden, "access denied")
		}
		c.Locals("user", u)
		c.Locals("user_id", u.ID)
		return c.Next()
	}
}
