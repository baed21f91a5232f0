package handlers

import (
	"github.com/arzan03/BloodAid/internal/models"
	"github.com/arzan03/BloodAid/internal/services"
	"github.com/gofiber/fiber/v2"
)

// CreatePaymentIntent starts a card payment on the gateway and returns the
// client secret the frontend completes the charge with.
func CreatePaymentIntent(c *fiber.Ctx) error {
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	clientSecret, err := services.CreatePaymentIntent(body.Amount)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{"clientSecret": clientSecret})
}

// CreateFunding records a completed contribution.
func CreateFunding(c *fiber.Ctx) error {
	var funding models.Funding
	if err := c.BodyParser(&funding); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := services.RecordFunding(ctx, funding)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(result)
}

// ListFundings returns every funding record, newest first.
func ListFundings(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	fundings, err := services.ListFundings(ctx)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(fundings)
}

// FundingTotal returns the ledger sum (volunteer/admin only).
func FundingTotal(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	total, err := services.TotalFunding(ctx)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{"total": total})
}
