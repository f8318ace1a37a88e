package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tanvirhossain/contesthub/internal/services"
)

type AuthHandler struct {
	tokens *services.TokenService
}

func NewAuthHandler(tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// CreateToken signs a session token for the submitted identity payload
// and sets it as an HTTP-only cookie readable across sites.
func (h *AuthHandler) CreateToken(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if body.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email is required")
	}

	token, err := h.tokens.Sign(body.Email, body.Role)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokens.TTL()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

// Logout overwrites the session cookie with an immediately expiring one.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
	return c.JSON(fiber.Map{"success": true})
}
