package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tanvirhossain/contesthub/internal/models"
	"github.com/tanvirhossain/contesthub/internal/services"
)

// UserFinder is the lookup the role check needs; satisfied by
// services.UserService and by test doubles.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Auth carries the token verifier and user lookup for the route guards.
type Auth struct {
	tokens *services.TokenService
	users  UserFinder
}

func NewAuth(tokens *services.TokenService, users UserFinder) *Auth {
	return &Auth{tokens: tokens, users: users}
}

// Authenticated requires a valid bearer token and stores the decoded
// claims in the request locals.
func (a *Auth) Authenticated(c *fiber.Ctx) error {
	claims, err := a.bearerClaims(c)
	if err != nil {
		return err
	}
	storeClaims(c, claims)
	return c.Next()
}

// RequireRoles is a single composed guard: it always verifies the bearer
// token first, then admits the request only if the user stored for the
// claim's email has one of the allowed roles. Authorization can never run
// against unverified claims because the two steps live in one handler.
func (a *Auth) RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := a.bearerClaims(c)
		if err != nil {
			return err
		}
		storeClaims(c, claims)

		user, err := a.users.GetByEmail(c.UserContext(), claims.Email)
		if err != nil {
			return err
		}
		if user == nil || !hasRole(user.Role, roles) {
			return fiber.NewError(fiber.StatusForbidden, "You don't have permission to access")
		}

		c.Locals("user_id", user.ID.Hex())
		return c.Next()
	}
}

func (a *Auth) bearerClaims(c *fiber.Ctx) (*services.Claims, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized Access")
	}

	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header || raw == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized Access")
	}

	claims, err := a.tokens.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized Access")
	}
	return claims, nil
}

func storeClaims(c *fiber.Ctx, claims *services.Claims) {
	c.Locals("email", claims.Email)
	c.Locals("role", claims.Role)
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
