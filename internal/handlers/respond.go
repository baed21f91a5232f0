package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/arzan03/BloodAid/internal/services"
	"github.com/gofiber/fiber/v2"
)

// requestContext caps every store call at 10 seconds.
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// failWith maps service errors to HTTP responses. Anything outside the known
// taxonomy is a store or gateway failure and surfaces as a generic 500.
func failWith(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEmailRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "email required"})
	case errors.Is(err, services.ErrAmountTooSmall):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Minimum amount is $0.50"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Invalid status update"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found in DB"})
	default:
		log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
	}
}
