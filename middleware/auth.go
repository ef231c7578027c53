// middleware/auth.go - Authentication and role authorization gate
package middleware

import (
	"os"
	"strings"
	"time"

	"hacksphere/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "hacksphere-secret-change-in-production"
	}
	return []byte(secret)
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(401, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fiber.NewError(401, "Token expired")
	}

	return claims, nil
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func setIdentity(c *fiber.Ctx, claims jwt.MapClaims) {
	c.Locals("userId", claims["user_id"])
	c.Locals("name", claims["name"])
	c.Locals("role", claims["role"])
	c.Locals("instituteId", claims["institute_id"])
}

// Protect resolves the bearer credential to an identity and attaches it to
// the request. Requests without a valid token get 401 before any handler
// runs. The gate is stateless: role and institute come from the claims.
func Protect(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	token := bearerToken(c)
	if token == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization header format"})
	}

	claims, err := parseToken(token)
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
		}
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	setIdentity(c, claims)
	return c.Next()
}

// Authorize admits only the listed roles. With no roles listed, any
// authenticated identity passes. Must be registered after Protect.
func Authorize(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
		}

		if len(roles) == 0 {
			return c.Next()
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{"error": "Access denied. Insufficient role."})
	}
}

// OptionalAuth attaches an identity when a valid token is present and lets
// the request through either way. Used by public routes that personalize
// their response for signed-in users. Browser websocket clients cannot set
// headers, so a ?token= query parameter is accepted as a fallback.
func OptionalAuth(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		return c.Next()
	}

	claims, err := parseToken(token)
	if err != nil {
		return c.Next()
	}

	setIdentity(c, claims)
	return c.Next()
}

// GetUserID returns the authenticated user's ID from the request context.
func GetUserID(c *fiber.Ctx) (uint, error) {
	userID := c.Locals("userId")
	if userID == nil {
		return 0, fiber.NewError(401, "User not authenticated")
	}

	if id, ok := userID.(float64); ok {
		return uint(id), nil
	}

	if id, ok := userID.(uint); ok {
		return id, nil
	}

	return 0, fiber.NewError(401, "Invalid user ID format")
}

// GetRole returns the authenticated user's role, empty when the request
// carries no identity.
func GetRole(c *fiber.Ctx) models.Role {
	val := c.Locals("role")
	if val == nil {
		return ""
	}

	switch v := val.(type) {
	case models.Role:
		return v
	case string:
		if role, ok := models.ParseRole(v); ok {
			return role
		}
	}
	return ""
}

// GetInstituteID returns the authenticated user's institute, empty when the
// identity carries none.
func GetInstituteID(c *fiber.Ctx) string {
	val := c.Locals("instituteId")
	if val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
