// handlers/join_requests.go
package handlers

import (
	"hacksphere/middleware"

	"github.com/gofiber/fiber/v2"
)

// SendJoinRequest lets a free student ask to join a team.
func SendJoinRequest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		TeamID uint `json:"team_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.TeamID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "team_id required"})
	}

	request, err := teamService.SendJoinRequest(userID, req.TeamID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "request": request})
}

// PendingJoinRequests lists the pending requests for the caller's team.
// Non-leaders get an empty list.
func PendingJoinRequests(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	requests, err := teamService.PendingJoinRequests(userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests, "count": len(requests)})
}

func AcceptJoinRequest(c *fiber.Ctx) error {
	return respondJoinRequest(c, true)
}

func RejectJoinRequest(c *fiber.Ctx) error {
	return respondJoinRequest(c, false)
}

func respondJoinRequest(c *fiber.Ctx, accept bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	request, err := teamService.RespondJoinRequest(id, userID, accept)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "request": request})
}
