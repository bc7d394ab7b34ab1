package handlers

import (
	"errors"

	"github.com/akashch1512/Prep-Tester/database"
	"github.com/akashch1512/Prep-Tester/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Admin-only catalog curation. End users never reach these; the test-taking
// flow reads the catalog through the public handlers.

type BranchRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type SubjectRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	BranchID    string `json:"branch_id" validate:"required,uuid"`
	Description string `json:"description"`
}

type TestRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	SubjectID       string `json:"subject_id" validate:"required,uuid"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gt=0"`
	TotalMarks      int    `json:"total_marks" validate:"omitempty,gt=0"`
}

type AdminQuestionRequest struct {
	TestID        string  `json:"test_id" validate:"required,uuid"`
	Text          string  `json:"text" validate:"required"`
	Option1       string  `json:"option1" validate:"required,max=500"`
	Option2       string  `json:"option2" validate:"required,max=500"`
	Option3       string  `json:"option3" validate:"required,max=500"`
	Option4       string  `json:"option4" validate:"required,max=500"`
	CorrectOption int     `json:"correct_option" validate:"required,gte=1,lte=4"`
	Solution      *string `json:"solution"`
}

func CreateBranch(c *fiber.Ctx) error {
	var req BranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	branch := models.Branch{Name: req.Name, Description: req.Description}
	if err := database.DB.Create(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A branch with that name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create branch"})
	}

	return c.Status(fiber.StatusCreated).JSON(branch)
}

func UpdateBranch(c *fiber.Ctx) error {
	var branch models.Branch
	if err := database.DB.First(&branch, "id = ?", c.Params("branchId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
	}

	var req BranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	branch.Name = req.Name
	branch.Description = req.Description
	if err := database.DB.Save(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A branch with that name already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update branch"})
	}

	return c.JSON(branch)
}

func DeleteBranch(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Branch{}, "id = ?", c.Params("branchId"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete branch"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func CreateSubject(c *fiber.Ctx) error {
	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var branch models.Branch
	if err := database.DB.First(&branch, "id = ?", req.BranchID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Branch not found"})
	}

	subject := models.Subject{Name: req.Name, BranchID: branch.ID, Description: req.Description}
	if err := database.DB.Create(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A subject with that name already exists in this branch"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	return c.Status(fiber.StatusCreated).JSON(subject)
}

func DeleteSubject(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Subject{}, "id = ?", c.Params("subjectId"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete subject"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func CreateTest(c *fiber.Ctx) error {
	var req TestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", req.SubjectID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Subject not found"})
	}

	test := models.Test{
		Name:            req.Name,
		SubjectID:       subject.ID,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
	}
	if test.DurationMinutes == 0 {
		test.DurationMinutes = 60
	}
	if test.TotalMarks == 0 {
		test.TotalMarks = 100
	}

	if err := database.DB.Create(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A test with that name already exists in this subject"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create test"})
	}

	return c.Status(fiber.StatusCreated).JSON(test)
}

func DeleteTest(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Test{}, "id = ?", c.Params("testId"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete test"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func CreateQuestion(c *fiber.Ctx) error {
	var req AdminQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var test models.Test
	if err := database.DB.First(&test, "id = ?", req.TestID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Test not found"})
	}

	var existing int64
	database.DB.Model(&models.Question{}).Where("test_id = ?", test.ID).Count(&existing)

	question := models.Question{
		TestID:        test.ID,
		Text:          req.Text,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
		Solution:      req.Solution,
		SortOrder:     int(existing),
	}

	if err := database.DB.Create(&question).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}

	return c.Status(fiber.StatusCreated).JSON(question)
}

func UpdateQuestion(c *fiber.Ctx) error {
	var question models.Question
	if err := database.DB.First(&question, "id = ?", c.Params("questionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var req AdminQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question.Text = req.Text
	question.Option1 = req.Option1
	question.Option2 = req.Option2
	question.Option3 = req.Option3
	question.Option4 = req.Option4
	question.CorrectOption = req.CorrectOption
	question.Solution = req.Solution
	database.DB.Save(&question)

	return c.JSON(question)
}

func DeleteQuestion(c *fiber.Ctx) error {
	result := database.DB.Delete(&models.Question{}, "id = ?", c.Params("questionId"))
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
