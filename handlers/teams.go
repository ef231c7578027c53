// handlers/teams.go
package handlers

import (
	"hacksphere/middleware"
	"hacksphere/services"

	"github.com/gofiber/fiber/v2"
)

// RegisterTeam creates the team and its leader account (public route).
func RegisterTeam(c *fiber.Ctx) error {
	var req services.RegisterTeamInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	team, err := teamService.Register(req)
	if err != nil {
		return respondErr(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success":   true,
		"team":      team,
		"team_code": team.TeamCode,
	})
}

// ListTeams returns the teams visible to the caller's role.
func ListTeams(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	role := middleware.GetRole(c)
	instituteID := middleware.GetInstituteID(c)

	teams, err := teamService.ListFor(role, instituteID, userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"teams": teams, "count": len(teams)})
}

func GetTeam(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid team ID"})
	}

	team, err := teamService.Get(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(team)
}

// UpdateTeam applies leader-editable fields. The service rejects callers
// who are not the team leader.
func UpdateTeam(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid team ID"})
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req services.TeamUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	team, err := teamService.Update(id, userID, req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(team)
}

func ApproveTeam(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid team ID"})
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	team, err := teamService.Approve(id, userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "team": team})
}

func RejectTeam(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid team ID"})
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	team, err := teamService.Reject(id, userID, req.Reason)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "team": team})
}
