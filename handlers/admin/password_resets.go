// handlers/admin/password_resets.go - Admin review of reset requests
package admin

import (
	"strconv"
	"time"

	"hacksphere/middleware"
	"hacksphere/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// ListPasswordResets returns reset requests, optionally filtered by
// ?status=pending|approved|rejected.
func ListPasswordResets(c *fiber.Ctx) error {
	status := models.ResetStatus(c.Query("status"))

	requests, err := appStore.PasswordResets().List(status)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests, "count": len(requests)})
}

// ApprovePasswordReset sets the user's password to the one supplied by the
// admin and closes the request.
func ApprovePasswordReset(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "Password must be at least 6 characters"})
	}

	reset, err := appStore.PasswordResets().GetByID(uint(id))
	if err != nil {
		return respondErr(c, err)
	}
	if reset.Status != models.ResetPending {
		return c.Status(400).JSON(fiber.Map{"error": "Request already processed"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}
	if err := appStore.Users().SetPassword(reset.UserID, string(hashed)); err != nil {
		return respondErr(c, err)
	}

	adminID, _ := middleware.GetUserID(c)
	now := time.Now()
	reset.Status = models.ResetApproved
	reset.ProcessedAt = &now
	reset.ProcessedBy = &adminID
	if err := appStore.PasswordResets().Save(reset); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "request": reset})
}

func RejectPasswordReset(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reset, err := appStore.PasswordResets().GetByID(uint(id))
	if err != nil {
		return respondErr(c, err)
	}
	if reset.Status != models.ResetPending {
		return c.Status(400).JSON(fiber.Map{"error": "Request already processed"})
	}

	adminID, _ := middleware.GetUserID(c)
	now := time.Now()
	reset.Status = models.ResetRejected
	reset.ProcessedAt = &now
	reset.ProcessedBy = &adminID
	reset.RejectionReason = req.Reason
	if err := appStore.PasswordResets().Save(reset); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "request": reset})
}
