// handlers/rubrics.go
package handlers

import (
	"hacksphere/models"

	"github.com/gofiber/fiber/v2"
)

// ListRubrics returns rubrics in display order. Pass ?active=true to
// filter to active rubrics only.
func ListRubrics(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"

	rubrics, err := rubricService.List(activeOnly)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"rubrics": rubrics, "count": len(rubrics)})
}

func CreateRubric(c *fiber.Ctx) error {
	var r models.Rubric
	if err := c.BodyParser(&r); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := rubricService.Create(&r); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "rubric": r})
}

func UpdateRubric(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid rubric ID"})
	}

	var r models.Rubric
	if err := c.BodyParser(&r); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := rubricService.Update(id, &r)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "rubric": updated})
}

func DeleteRubric(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid rubric ID"})
	}

	if err := rubricService.Delete(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ReorderRubrics renumbers rubrics by the position of their IDs in the
// request body.
func ReorderRubrics(c *fiber.Ctx) error {
	var req struct {
		IDs []uint `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(req.IDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "ids required"})
	}

	rubrics, err := rubricService.Reorder(req.IDs)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "rubrics": rubrics})
}

// ValidateRubricWeights reports whether active rubric weights sum to 1.0.
func ValidateRubricWeights(c *fiber.Ctx) error {
	report, err := rubricService.ValidateWeights()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(report)
}
