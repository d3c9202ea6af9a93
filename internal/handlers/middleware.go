package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-reviewer/internal/services"
)

const userEmailKey = "userEmail"

// RequireAuth rejects requests without a valid bearer token and stores the
// token subject in the request locals.
func RequireAuth(tokens services.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return respondError(c, fiber.StatusUnauthorized, "Missing or invalid authorization header")
		}

		email, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(userEmailKey, email)
		return c.Next()
	}
}
