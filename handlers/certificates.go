// handlers/certificates.go
package handlers

import (
	"hacksphere/middleware"
	"hacksphere/models"
	"hacksphere/services"

	"github.com/gofiber/fiber/v2"
)

func GetCertificateConfig(c *fiber.Ctx) error {
	config, err := certificateService.GetConfig()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(config)
}

func UpdateCertificateConfig(c *fiber.Ctx) error {
	var req models.CertificateConfig
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	config, err := certificateService.UpdateConfig(&req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "config": config})
}

// GenerateCertificates issues certificates for the named users or for
// every member of the named teams.
func GenerateCertificates(c *fiber.Ctx) error {
	var req services.GenerateInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	records, err := certificateService.Generate(req)
	if err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "certificates": records, "count": len(records)})
}

func MyCertificates(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	records, err := certificateService.MyCertificates(userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"certificates": records, "count": len(records)})
}

// DownloadCertificate returns the record with its PDF URL. Only the owner
// or an admin may fetch it.
func DownloadCertificate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid certificate ID"})
	}
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	record, err := certificateService.Download(id, userID, middleware.GetRole(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(record)
}
