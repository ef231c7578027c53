// handlers/problems.go - Problem catalog and team selection
package handlers

import (
	"hacksphere/middleware"
	"hacksphere/models"

	"github.com/gofiber/fiber/v2"
)

// ListProblems returns the catalog with per-problem selection counts.
func ListProblems(c *fiber.Ctx) error {
	problems, err := problemService.List()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"problems": problems, "count": len(problems)})
}

func GetProblem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid problem ID"})
	}

	problem, err := problemService.Get(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(problem)
}

func CreateProblem(c *fiber.Ctx) error {
	var p models.Problem
	if err := c.BodyParser(&p); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := problemService.Create(&p); err != nil {
		return respondErr(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "problem": p})
}

func UpdateProblem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid problem ID"})
	}

	var p models.Problem
	if err := c.BodyParser(&p); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := problemService.Update(id, &p)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "problem": updated})
}

// SelectionStatus reports whether the selection window is open. Public so
// the landing page can show it without a login.
func SelectionStatus(c *fiber.Ctx) error {
	open, err := problemService.SelectionOpen()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"is_open": open})
}

// ToggleSelectionWindow opens or closes the selection window.
func ToggleSelectionWindow(c *fiber.Ctx) error {
	var req struct {
		IsOpen bool `json:"is_open"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := problemService.SetSelectionOpen(req.IsOpen); err != nil {
		return respondErr(c, err)
	}
	verb := "closed"
	if req.IsOpen {
		verb = "opened"
	}
	return c.JSON(fiber.Map{"success": true, "is_open": req.IsOpen, "message": "Problem selection window " + verb})
}

// SelectProblem records the caller's problem choice for their team. Only
// the leader of an approved team can select, and only while the window is
// open.
func SelectProblem(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		ProblemID uint `json:"problem_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.ProblemID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "problem_id is required"})
	}

	problem, err := problemService.Select(userID, req.ProblemID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Successfully selected: " + problem.Title,
		"selected_problem": fiber.Map{
			"id":       problem.ID,
			"title":    problem.Title,
			"category": problem.Category,
		},
	})
}

// MySelection returns the caller's team problem choice and whether they
// could change it.
func MySelection(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	sel, err := problemService.MySelection(userID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(sel)
}

// AllSelections is the admin roll-up of approved teams grouped by problem.
func AllSelections(c *fiber.Ctx) error {
	report, err := problemService.AllSelections()
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(report)
}
