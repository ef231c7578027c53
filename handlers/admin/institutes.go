// handlers/admin/institutes.go
package admin

import (
	"hacksphere/models"

	"github.com/gofiber/fiber/v2"
)

// ListInstitutes returns all institutes. Pass ?active=true to filter.
func ListInstitutes(c *fiber.Ctx) error {
	institutes, err := appStore.Institutes().List(c.Query("active") == "true")
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"institutes": institutes, "count": len(institutes)})
}

func CreateInstitute(c *fiber.Ctx) error {
	var inst models.Institute
	if err := c.BodyParser(&inst); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	inst.NormalizeCode()
	inst.IsActive = true
	if err := inst.Validate(); err != nil {
		return respondErr(c, err)
	}

	if err := appStore.Institutes().Create(&inst); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "institute": inst})
}

func UpdateInstitute(c *fiber.Ctx) error {
	code := c.Params("code")
	existing, err := appStore.Institutes().GetByCode(code)
	if err != nil {
		return respondErr(c, err)
	}

	var req struct {
		Name     string `json:"name"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := appStore.Institutes().Save(existing); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "institute": existing})
}

func DeleteInstitute(c *fiber.Ctx) error {
	code := c.Params("code")
	existing, err := appStore.Institutes().GetByCode(code)
	if err != nil {
		return respondErr(c, err)
	}

	if err := appStore.Institutes().Delete(existing.ID); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
