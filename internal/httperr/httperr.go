package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handler is the app-wide fiber error handler. Every handler and service
// surfaces failures as errors; known ones are *fiber.Error values carrying
// their status code, anything else becomes a 500. All error responses are
// JSON bodies with an "error" field.
func Handler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
