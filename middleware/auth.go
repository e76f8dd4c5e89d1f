package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vefforritun/verkefni-api/logging"
)

// parseToken verifies the bearer token and loads its claims into the
// request context. On failure the 401 response is already written and
// ok is false.
func parseToken(c *fiber.Ctx, secret string) (bool, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return false, c.Status(401).JSON(fiber.Map{"error": "missing token"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return false, c.Status(401).JSON(fiber.Map{"error": "invalid token format"})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		logging.Logger.Warnf("rejected token for %s %s: %v", c.Method(), c.Path(), err)
		return false, c.Status(401).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		c.Locals("user_id", claims["user_id"])
		admin, _ := claims["admin"].(bool)
		c.Locals("admin", admin)
	}

	return true, nil
}

// RequireAuthentication only lets authenticated requests through.
func RequireAuthentication(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := parseToken(c, secret)
		if !ok {
			return err
		}
		return c.Next()
	}
}

// RequireAdmin only lets authenticated requests with the admin claim
// through.
func RequireAdmin(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := parseToken(c, secret)
		if !ok {
			return err
		}
		if admin, _ := c.Locals("admin").(bool); !admin {
			return c.Status(403).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}
