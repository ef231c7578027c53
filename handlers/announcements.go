// handlers/announcements.go
package handlers

import (
	"hacksphere/middleware"
	"hacksphere/models"

	"github.com/gofiber/fiber/v2"
)

type announcementRequest struct {
	Title             string                  `json:"title"`
	Message           string                  `json:"message"`
	Type              models.AnnouncementType `json:"type"`
	Audience          models.Audience         `json:"audience"`
	TargetInstituteID string                  `json:"target_institute_id"`
	TargetTeamID      *uint                   `json:"target_team_id"`
}

// ListAnnouncements returns the announcements visible to the caller,
// annotated with their read state. Admins see everything.
func ListAnnouncements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if middleware.GetRole(c) == models.RoleAdmin {
		list, err := announcementService.ListAll()
		if err != nil {
			return respondErr(c, err)
		}
		return c.JSON(fiber.Map{"announcements": list, "count": len(list)})
	}

	list, err := announcementService.ListForUser(userID, middleware.GetInstituteID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"announcements": list, "count": len(list)})
}

// AdminListAnnouncements returns every announcement regardless of audience.
func AdminListAnnouncements(c *fiber.Ctx) error {
	list, err := announcementService.ListAll()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"announcements": list, "count": len(list)})
}

func CreateAnnouncement(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req announcementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	a := models.Announcement{
		Title:             req.Title,
		Message:           req.Message,
		Type:              req.Type,
		Audience:          req.Audience,
		TargetInstituteID: req.TargetInstituteID,
		TargetTeamID:      req.TargetTeamID,
		CreatedBy:         userID,
	}
	if a.Type == "" {
		a.Type = models.AnnouncementInfo
	}
	if a.Audience == "" {
		a.Audience = models.AudienceAll
	}

	if err := announcementService.Create(&a); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "announcement": a})
}

func UpdateAnnouncement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid announcement ID"})
	}

	var req announcementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	a, err := announcementService.Update(id, &models.Announcement{
		Title:             req.Title,
		Message:           req.Message,
		Type:              req.Type,
		Audience:          req.Audience,
		TargetInstituteID: req.TargetInstituteID,
		TargetTeamID:      req.TargetTeamID,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "announcement": a})
}

func DeleteAnnouncement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid announcement ID"})
	}

	if err := announcementService.Delete(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func MarkAnnouncementRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid announcement ID"})
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := announcementService.MarkRead(id, userID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func MarkAllAnnouncementsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := announcementService.MarkAllRead(userID, middleware.GetInstituteID(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
