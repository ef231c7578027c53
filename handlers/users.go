// handlers/users.go
package handlers

import (
	"hacksphere/middleware"
	"hacksphere/models"
	"hacksphere/store"

	"github.com/gofiber/fiber/v2"
)

// ListUsers pages through users. Admins see every institute; SPOCs are
// pinned to their own.
func ListUsers(c *fiber.Ctx) error {
	filter := store.UserFilter{
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}
	if role, ok := models.ParseRole(c.Query("role")); ok {
		filter.Role = role
	}

	if middleware.GetRole(c) == models.RoleSpoc {
		filter.InstituteID = middleware.GetInstituteID(c)
	} else if inst := c.Query("institute_id"); inst != "" {
		filter.InstituteID = inst
	}

	users, total, err := appStore.Users().List(filter)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  filter.Page,
		"limit": filter.Limit,
	})
}

func GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := appStore.Users().GetByID(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(user)
}

// SearchAvailableStudents finds teamless students in the caller's
// institute, for invite pickers.
func SearchAvailableStudents(c *fiber.Ctx) error {
	users, err := appStore.Users().SearchAvailable(middleware.GetInstituteID(c), c.Query("q"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "count": len(users)})
}

func DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	callerID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	if id == callerID {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot delete your own account"})
	}

	if err := appStore.Users().Delete(id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
