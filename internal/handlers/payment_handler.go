package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStore creates payment intents for contest entry fees.
type PaymentStore interface {
	CreateEntryIntent(ctx context.Context, contestID primitive.ObjectID, email string) (string, error)
}

type PaymentHandler struct {
	payments PaymentStore
}

func NewPaymentHandler(payments PaymentStore) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateIntent starts an entry-fee payment for the authenticated user.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	if email == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized Access")
	}

	var body struct {
		ContestID string `json:"contestId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	contestID, err := primitive.ObjectIDFromHex(body.ContestID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid contest ID format")
	}

	clientSecret, err := h.payments.CreateEntryIntent(c.UserContext(), contestID, email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"clientSecret": clientSecret})
}
