// handlers/admin/stats.go - Dashboard counts
package admin

import (
	"hacksphere/middleware"
	"hacksphere/models"
	"hacksphere/store"

	"github.com/gofiber/fiber/v2"
)

// Stats returns headline counts for the dashboard. SPOCs get their
// institute's slice; admins see everything.
func Stats(c *fiber.Ctx) error {
	instituteID := ""
	if middleware.GetRole(c) == models.RoleSpoc {
		instituteID = middleware.GetInstituteID(c)
	}

	teams, err := appStore.Teams().List(store.TeamFilter{InstituteID: instituteID})
	if err != nil {
		return respondErr(c, err)
	}

	pending, approved, rejected := 0, 0, 0
	for _, t := range teams {
		switch t.Status {
		case models.TeamStatusPending:
			pending++
		case models.TeamStatusApproved:
			approved++
		case models.TeamStatusRejected:
			rejected++
		}
	}

	_, students, err := appStore.Users().List(store.UserFilter{Role: models.RoleStudent, InstituteID: instituteID, Limit: 1})
	if err != nil {
		return respondErr(c, err)
	}
	_, mentors, err := appStore.Users().List(store.UserFilter{Role: models.RoleMentor, InstituteID: instituteID, Limit: 1})
	if err != nil {
		return respondErr(c, err)
	}

	resets, err := appStore.PasswordResets().List(models.ResetPending)
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{
		"teams": fiber.Map{
			"total":    len(teams),
			"pending":  pending,
			"approved": approved,
			"rejected": rejected,
		},
		"students":                students,
		"mentors":                 mentors,
		"pending_password_resets": len(resets),
	})
}
