// handlers/admin/admin.go - Shared wiring for the admin handler group
package admin

import (
	"errors"

	"hacksphere/models"
	"hacksphere/store"

	"github.com/gofiber/fiber/v2"
)

var appStore store.Store

// Init wires the admin handlers to the application store.
func Init(s store.Store) {
	appStore = s
}

func respondErr(c *fiber.Ctx, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(400).JSON(fiber.Map{"error": verr.Reason, "field": verr.Field})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, store.ErrConflict):
		return c.Status(409).JSON(fiber.Map{"error": "Already exists"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}
}
