// handlers/handlers.go - Handler wiring and error mapping
package handlers

import (
	"errors"

	"hacksphere/models"
	"hacksphere/services"
	"hacksphere/store"

	"github.com/gofiber/fiber/v2"
)

var (
	appStore store.Store

	teamService         *services.TeamService
	announcementService *services.AnnouncementService
	notificationService *services.NotificationService
	rubricService       *services.RubricService
	certificateService  *services.CertificateService
	problemService      *services.ProblemService
	feedHub             *services.FeedHub
)

// Init wires the handler package to its store and services. Tests call it
// with an in-memory store.
func Init(s store.Store) {
	appStore = s
	feedHub = services.NewFeedHub()
	teamService = services.NewTeamService(s)
	announcementService = services.NewAnnouncementService(s, feedHub)
	notificationService = services.NewNotificationService(s)
	rubricService = services.NewRubricService(s)
	certificateService = services.NewCertificateService(s)
	problemService = services.NewProblemService(s)
}

// respondErr maps the error taxonomy onto status codes: validation 400,
// forbidden 403, not found 404, conflict 409, domain rule violations 400.
func respondErr(c *fiber.Ctx, err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(400).JSON(fiber.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(403).JSON(fiber.Map{"error": "Access denied"})
	case errors.Is(err, services.ErrSelectionClosed),
		errors.Is(err, services.ErrTeamNotApproved):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, store.ErrConflict):
		return c.Status(409).JSON(fiber.Map{"error": "Already exists"})
	case errors.Is(err, services.ErrAlreadyInTeam),
		errors.Is(err, services.ErrTeamFull),
		errors.Is(err, services.ErrCrossInstitute),
		errors.Is(err, services.ErrNotLeader),
		errors.Is(err, services.ErrAlreadyHandled):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
}

// paramID parses the :id route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(400, "Invalid id")
	}
	return uint(id), nil
}
