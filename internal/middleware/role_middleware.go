package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/arzan03/BloodAid/internal/models"
	"github.com/arzan03/BloodAid/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Each guard performs one store lookup for the verified email and
// short-circuits the request on failure. Guards check role or status only;
// they never mutate state.

func currentUser(c *fiber.Ctx) (models.User, error) {
	email, _ := c.Locals("email").(string)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return services.GetUserByEmail(ctx, email)
}

func guardError(c *fiber.Ctx, err error) error {
	// A valid token whose user is missing from the directory fails the
	// guard, same as a role mismatch.
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
}

// AdminOnly allows only admins through.
func AdminOnly(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return guardError(c, err)
	}
	if user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}
	return c.Next()
}

// VolunteerOrAdmin allows privileged roles through.
func VolunteerOrAdmin(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return guardError(c, err)
	}
	if !user.IsPrivileged() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	}
	return c.Next()
}

// ActiveUserOnly rejects blocked accounts.
func ActiveUserOnly(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return guardError(c, err)
	}
	if user.Status != models.StatusActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Blocked user"})
	}
	return c.Next()
}
