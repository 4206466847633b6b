package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Locals keys set by Protect.
const (
	UserIDKey = "userID"
	RoleKey   = "userRole"
)

// RoleAdmin unlocks the admin surface.
const RoleAdmin = "admin"

// Protect verifies the Bearer token and stores the subject (owner id) and
// role claim in request locals. Token issuance lives elsewhere; this service
// only trusts the shared HS256 secret.
func Protect(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return unauthorized(c, "Missing bearer token")
		}

		token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			return unauthorized(c, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c, "Invalid token claims")
		}
		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			return unauthorized(c, "Token has no subject")
		}

		role, _ := claims["role"].(string)
		c.Locals(UserIDKey, sub)
		c.Locals(RoleKey, role)
		return c.Next()
	}
}

// AdminOnly gates a route on the admin role. Must run after Protect.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(RoleKey).(string); role != RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}

// OwnerID returns the authenticated owner id set by Protect.
func OwnerID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}
