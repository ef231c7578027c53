// handlers/password_resets.go
package handlers

import (
	"strings"
	"time"

	"hacksphere/models"

	"github.com/gofiber/fiber/v2"
)

// RequestPasswordReset files a reset request for admin review (public).
// The response never reveals whether the email exists.
func RequestPasswordReset(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email required"})
	}

	accepted := fiber.Map{
		"success": true,
		"message": "If the account exists, a reset request has been filed",
	}

	user, err := appStore.Users().GetByEmail(email)
	if err != nil {
		return c.JSON(accepted)
	}

	reset := models.PasswordResetRequest{
		UserID:      user.ID,
		Email:       user.Email,
		UserName:    user.Name,
		UserPhone:   req.Phone,
		Status:      models.ResetPending,
		RequestedAt: time.Now(),
	}
	if err := appStore.PasswordResets().Create(&reset); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(accepted)
}
