// handlers/invites.go
package handlers

import (
	"hacksphere/middleware"

	"github.com/gofiber/fiber/v2"
)

// SendInvite lets a team leader invite a free student from the same institute.
func SendInvite(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		ToUserID uint `json:"to_user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ToUserID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "to_user_id required"})
	}

	invite, err := teamService.SendInvite(userID, req.ToUserID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "invite": invite})
}

// MyInvites lists the pending invites addressed to the caller.
func MyInvites(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	invites, err := teamService.MyInvites(userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"invites": invites, "count": len(invites)})
}

func AcceptInvite(c *fiber.Ctx) error {
	return respondInvite(c, true)
}

func RejectInvite(c *fiber.Ctx) error {
	return respondInvite(c, false)
}

func respondInvite(c *fiber.Ctx, accept bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid invite ID"})
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	invite, err := teamService.RespondInvite(id, userID, accept)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "invite": invite})
}
