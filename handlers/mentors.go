// handlers/mentors.go - Admin mentor management and the mentor dashboard
package handlers

import (
	"strings"

	"hacksphere/middleware"
	"hacksphere/models"
	"hacksphere/store"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func ListMentors(c *fiber.Ctx) error {
	mentors, total, err := appStore.Users().List(store.UserFilter{
		Role:        models.RoleMentor,
		InstituteID: c.Query("institute_id"),
		Search:      c.Query("search"),
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"mentors": mentors, "total": total})
}

// CreateMentor provisions a mentor account with a known password.
func CreateMentor(c *fiber.Ctx) error {
	var req struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		Password      string `json:"password"`
		InstituteCode string `json:"institute_code"`
		InstituteName string `json:"institute_name"`
		Expertise     string `json:"expertise"`
		Phone         string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.Password) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "Password must be at least 6 characters"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	code := strings.ToUpper(strings.TrimSpace(req.InstituteCode))
	mentor := models.User{
		Name:          req.Name,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Password:      string(hashed),
		Role:          models.RoleMentor,
		InstituteID:   code,
		InstituteCode: code,
		InstituteName: req.InstituteName,
		Expertise:     req.Expertise,
		Phone:         req.Phone,
	}
	if err := mentor.Validate(); err != nil {
		return respondErr(c, err)
	}

	if err := appStore.Users().Create(&mentor); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "mentor": mentor})
}

func UpdateMentor(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid mentor ID"})
	}

	mentor, err := appStore.Users().GetByID(id)
	if err != nil {
		return respondErr(c, err)
	}
	if mentor.Role != models.RoleMentor {
		return c.Status(404).JSON(fiber.Map{"error": "Mentor not found"})
	}

	var req struct {
		Name      string `json:"name"`
		Expertise string `json:"expertise"`
		Phone     string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != "" {
		mentor.Name = req.Name
	}
	mentor.Expertise = req.Expertise
	mentor.Phone = req.Phone

	if err := appStore.Users().Save(mentor); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "mentor": mentor})
}

func DeleteMentor(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid mentor ID"})
	}

	mentor, err := appStore.Users().GetByID(id)
	if err != nil {
		return respondErr(c, err)
	}
	if mentor.Role != models.RoleMentor {
		return c.Status(404).JSON(fiber.Map{"error": "Mentor not found"})
	}

	if err := appStore.Users().Delete(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

type mentorAssignRequest struct {
	MentorID uint   `json:"mentor_id"`
	TeamIDs  []uint `json:"team_ids"`
}

// AssignMentorTeams adds teams to a mentor's assignment set.
func AssignMentorTeams(c *fiber.Ctx) error {
	var req mentorAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MentorID == 0 || len(req.TeamIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "mentor_id and team_ids required"})
	}

	mentor, err := appStore.Users().GetByID(req.MentorID)
	if err != nil {
		return respondErr(c, err)
	}
	if mentor.Role != models.RoleMentor {
		return c.Status(400).JSON(fiber.Map{"error": "User is not a mentor"})
	}

	if err := appStore.Users().AssignTeams(req.MentorID, req.TeamIDs); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func UnassignMentorTeams(c *fiber.Ctx) error {
	var req mentorAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.MentorID == 0 || len(req.TeamIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "mentor_id and team_ids required"})
	}

	if err := appStore.Users().UnassignTeams(req.MentorID, req.TeamIDs); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// MyMentorTeams lists the teams assigned to the calling mentor.
func MyMentorTeams(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	teams, err := appStore.Users().AssignedTeams(userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"teams": teams, "count": len(teams)})
}

// MentorStats summarizes the calling mentor's assigned teams.
func MentorStats(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	teams, err := appStore.Users().AssignedTeams(userID)
	if err != nil {
		return respondErr(c, err)
	}

	stats := fiber.Map{
		"total_teams":    len(teams),
		"approved_teams": 0,
		"pending_teams":  0,
		"total_members":  0,
	}
	approved, pending, members := 0, 0, 0
	for _, t := range teams {
		switch t.Status {
		case models.TeamStatusApproved:
			approved++
		case models.TeamStatusPending:
			pending++
		}
		members += len(t.Members)
	}
	stats["approved_teams"] = approved
	stats["pending_teams"] = pending
	stats["total_members"] = members
	return c.JSON(stats)
}

// MentorTeam returns one assigned team's details. Admins may fetch any team.
func MentorTeam(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid team ID"})
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if middleware.GetRole(c) != models.RoleAdmin {
		assigned, err := appStore.Users().AssignedTeams(userID)
		if err != nil {
			return respondErr(c, err)
		}
		found := false
		for _, t := range assigned {
			if t.ID == id {
				found = true
				break
			}
		}
		if !found {
			return c.Status(403).JSON(fiber.Map{"error": "Team is not assigned to you"})
		}
	}

	team, err := appStore.Teams().GetByID(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(team)
}
