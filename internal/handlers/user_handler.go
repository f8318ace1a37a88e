package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tanvirhossain/contesthub/internal/models"
)

// UserStore is what the user routes need from the repository layer.
type UserStore interface {
	List(ctx context.Context, page, limit int64) ([]models.User, int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreateOrGet(ctx context.Context, email string, user models.User) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error)
}

type UserHandler struct {
	users UserStore
}

func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	users, total, err := h.users.List(c.UserContext(), int64(page), int64(limit))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"users": users, "count": total})
}

// GetByEmail responds with a null body when the email is unknown; the
// frontend treats that as "not registered yet".
func (h *UserHandler) GetByEmail(c *fiber.Ctx) error {
	user, err := h.users.GetByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) CreateOrGet(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	stored, err := h.users.CreateOrGet(c.UserContext(), c.Params("email"), user)
	if err != nil {
		return err
	}
	return c.JSON(stored)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID format")
	}

	var fields bson.M
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.users.Update(c.UserContext(), id, fields)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"matchedCount":  result.MatchedCount,
		"modifiedCount": result.ModifiedCount,
	})
}
