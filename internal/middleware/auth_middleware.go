package middleware

import (
	"strings"

	"github.com/arzan03/BloodAid/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer JWT and stores the verified email in
// the request context for downstream handlers. Fails closed.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	email, err := services.ParseToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	c.Locals("email", email)
	return c.Next()
}
