package handlers

import (
	"github.com/arzan03/BloodAid/internal/services"
	"github.com/gofiber/fiber/v2"
)

// IssueToken signs a session JWT for a logged-in email. Identity itself is
// established by the upstream login provider; this endpoint only mints the
// API credential.
func IssueToken(c *fiber.Ctx) error {
	var request struct {
		Email string `json:"email"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if request.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email required"})
	}

	token, err := services.GenerateToken(request.Email)
	if err != nil {
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}
