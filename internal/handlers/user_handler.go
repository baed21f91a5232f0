package handlers

import (
	"github.com/arzan03/BloodAid/internal/services"
	"github.com/arzan03/BloodAid/internal/storage"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterUser upserts a user record on login.
func RegisterUser(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := services.RegisterUser(ctx, input)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(user)
}

// SearchDonors is the public donor lookup.
func SearchDonors(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	donors, err := services.SearchDonors(ctx, c.Query("bloodGroup"), c.Query("district"), c.Query("upazila"))
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(donors)
}

// GetMe returns the caller's own record.
func GetMe(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	ctx, cancel := requestContext()
	defer cancel()

	me, err := services.GetUserByEmail(ctx, email)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(me)
}

// UpdateMe applies profile updates to the caller's own record.
func UpdateMe(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	updates := map[string]interface{}{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := services.UpdateProfile(ctx, email, updates)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(result)
}

// UploadAvatar stores a new avatar image for the caller and updates their record.
func UploadAvatar(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "avatar file required"})
	}

	avatarURL, err := storage.UploadAvatar(fileHeader)
	if err != nil {
		return failWith(c, err)
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := services.SetAvatar(ctx, email, avatarURL)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(user)
}

// ListUsers is the paginated admin listing.
func ListUsers(c *fiber.Ctx) error {
	status := c.Query("status")
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	ctx, cancel := requestContext()
	defer cancel()

	users, total, err := services.ListUsers(ctx, status, page, limit)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "total": total})
}

// UpdateUserStatus sets a user's account status (admin only).
func UpdateUserStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := services.SetUserStatus(ctx, id, body.Status)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(result)
}

// UpdateUserRole sets a user's role (admin only).
func UpdateUserRole(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := services.SetUserRole(ctx, id, body.Role)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(result)
}
