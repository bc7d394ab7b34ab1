package handlers

import (
	"time"

	"github.com/akashch1512/Prep-Tester/database"
	"github.com/akashch1512/Prep-Tester/models"
	"github.com/gofiber/fiber/v2"
)

// Read-only catalog traversal for the test-taking flow. Mutation lives in
// the admin handlers.

func ListBranches(c *fiber.Ctx) error {
	var branches []models.Branch
	database.DB.Order("name asc").Find(&branches)
	return c.JSON(branches)
}

func ListBranchSubjects(c *fiber.Ctx) error {
	branchID := c.Params("branchId")

	var branch models.Branch
	if err := database.DB.First(&branch, "id = ?", branchID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
	}

	var subjects []models.Subject
	database.DB.Where("branch_id = ?", branch.ID).Order("name asc").Find(&subjects)
	return c.JSON(subjects)
}

func ListSubjectTests(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")

	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	var tests []models.Test
	database.DB.Where("subject_id = ?", subject.ID).Order("name asc").Find(&tests)
	return c.JSON(tests)
}

func GetTest(c *fiber.Ctx) error {
	testID := c.Params("testId")

	var test models.Test
	if err := database.DB.Preload("Subject").First(&test, "id = ?", testID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	var questionCount int64
	database.DB.Model(&models.Question{}).Where("test_id = ?", test.ID).Count(&questionCount)

	remaining := time.Until(test.EndsAt())
	if remaining < 0 {
		remaining = 0
	}

	return c.JSON(fiber.Map{
		"id":                     test.ID,
		"name":                   test.Name,
		"subject_id":             test.SubjectID,
		"subject_name":           test.Subject.Name,
		"duration_minutes":       test.DurationMinutes,
		"total_marks":            test.TotalMarks,
		"created_at":             test.CreatedAt,
		"question_count":         questionCount,
		"time_remaining_seconds": int(remaining.Seconds()),
	})
}
