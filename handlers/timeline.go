// handlers/timeline.go
package handlers

import (
	"errors"
	"time"

	"hacksphere/models"
	"hacksphere/store"

	"github.com/gofiber/fiber/v2"
)

// ListTimeline returns timeline events in display order (public).
func ListTimeline(c *fiber.Ctx) error {
	events, err := appStore.Timeline().List()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"events": events, "count": len(events)})
}

func CreateTimelineEvent(c *fiber.Ctx) error {
	var e models.TimelineEvent
	if err := c.BodyParser(&e); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := e.Validate(); err != nil {
		return respondErr(c, err)
	}

	if err := appStore.Timeline().Create(&e); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "event": e})
}

func UpdateTimelineEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	existing, err := appStore.Timeline().GetByID(id)
	if err != nil {
		return respondErr(c, err)
	}

	var req models.TimelineEvent
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	existing.Title = req.Title
	existing.Date = req.Date
	existing.Time = req.Time
	existing.Description = req.Description
	existing.Status = req.Status
	existing.Order = req.Order
	if err := existing.Validate(); err != nil {
		return respondErr(c, err)
	}

	if err := appStore.Timeline().Save(existing); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "event": existing})
}

func DeleteTimelineEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	if err := appStore.Timeline().Delete(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetCountdown returns the countdown target plus the remaining duration,
// clamped to zero once the target passes (public).
func GetCountdown(c *fiber.Ctx) error {
	countdown, err := appStore.Countdowns().Get()
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(fiber.Map{"active": false})
	}
	if err != nil {
		return respondErr(c, err)
	}

	remaining := time.Until(countdown.TargetDate)
	if remaining < 0 {
		remaining = 0
	}
	return c.JSON(fiber.Map{
		"active":            countdown.IsActive,
		"countdown":         countdown,
		"remaining_seconds": int64(remaining.Seconds()),
	})
}

// SetCountdown upserts the countdown singleton.
func SetCountdown(c *fiber.Ctx) error {
	var req models.Countdown
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return respondErr(c, err)
	}

	existing, err := appStore.Countdowns().Get()
	if err == nil {
		existing.Title = req.Title
		existing.TargetDate = req.TargetDate
		existing.IsActive = req.IsActive
		req = *existing
	} else if !errors.Is(err, store.ErrNotFound) {
		return respondErr(c, err)
	}

	if err := appStore.Countdowns().Save(&req); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "countdown": req})
}

// DisableCountdown keeps the target but stops the public display.
func DisableCountdown(c *fiber.Ctx) error {
	countdown, err := appStore.Countdowns().Get()
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(fiber.Map{"success": true, "active": false})
	}
	if err != nil {
		return respondErr(c, err)
	}

	countdown.IsActive = false
	if err := appStore.Countdowns().Save(countdown); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "countdown": countdown})
}
