package handlers

import (
	"github.com/arzan03/BloodAid/internal/models"
	"github.com/arzan03/BloodAid/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requestID(c *fiber.Ctx) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Params("id"))
}

// CreateRequest stores a new donation request for an active user.
func CreateRequest(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	var req models.DonationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if req.RequesterEmail == "" {
		req.RequesterEmail = email
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := services.CreateRequest(ctx, req)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(result)
}

// ListPublicRequests returns all pending requests without authentication.
func ListPublicRequests(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	requests, err := services.ListPublicRequests(ctx)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(requests)
}

// ListRequests is the authenticated, paginated listing. What the caller sees
// depends on their role.
func ListRequests(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	status := c.Query("status")
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	ctx, cancel := requestContext()
	defer cancel()

	me, err := services.GetUserByEmail(ctx, email)
	if err != nil {
		return failWith(c, err)
	}

	requests, total, err := services.ListRequests(ctx, me, status, page, limit)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests, "total": total})
}

// GetRequest returns a single request, or a null body when none exists.
func GetRequest(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	req, err := services.GetRequestByID(ctx, id)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(req)
}

// UpdateRequest applies field updates, owner or admin only.
func UpdateRequest(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request id"})
	}

	updates := map[string]interface{}{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	me, err := services.GetUserByEmail(ctx, email)
	if err != nil {
		return failWith(c, err)
	}

	result, err := services.UpdateRequest(ctx, me, id, updates)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(result)
}

// DeleteRequest removes a request, owner or admin only.
func DeleteRequest(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request id"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	me, err := services.GetUserByEmail(ctx, email)
	if err != nil {
		return failWith(c, err)
	}

	result, err := services.DeleteRequest(ctx, me, id)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(result)
}

// ConfirmDonate claims a pending request for the calling donor. Losing the
// claim race surfaces as a conflict, not a silent no-op.
func ConfirmDonate(c *fiber.Ctx) error {
	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request id"})
	}

	var body struct {
		DonorName  string `json:"donorName"`
		DonorEmail string `json:"donorEmail"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := services.ClaimRequest(ctx, id, body.DonorName, body.DonorEmail)
	if err != nil {
		return failWith(c, err)
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "request is no longer pending"})
	}
	return c.JSON(result)
}

// UpdateRequestStatus applies a status transition under the workflow rules.
func UpdateRequestStatus(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	id, err := requestID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request id"})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	me, err := services.GetUserByEmail(ctx, email)
	if err != nil {
		return failWith(c, err)
	}

	result, err := services.SetRequestStatus(ctx, me, id, body.Status)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(result)
}
