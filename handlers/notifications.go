// handlers/notifications.go
package handlers

import (
	"hacksphere/middleware"
	"hacksphere/services"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications returns the caller's notifications, newest first,
// excluding soft-deleted ones.
func ListNotifications(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	list, err := notificationService.ListForUser(userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"notifications": list, "count": len(list)})
}

func UnreadNotificationCount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	count, err := notificationService.UnreadCount(userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}

// CreateNotification fans a notification out to explicit recipients or to
// every user holding a role.
func CreateNotification(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req services.CreateNotificationInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	count, err := notificationService.Create(userID, req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "delivered": count})
}

func MarkNotificationRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := notificationService.MarkRead(id, userID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := notificationService.MarkAllRead(userID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteNotification soft-deletes so the row survives for auditing.
func DeleteNotification(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid notification ID"})
	}

	if err := notificationService.SoftDelete(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
