package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/akashch1512/Prep-Tester/database"
	"github.com/akashch1512/Prep-Tester/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// The session navigator is a cursor over the test's ordered questions. There
// is no session row: retaking a test re-walks the cursor from 0 and the
// per-question upsert overwrites prior answers.

type AnswerRequest struct {
	Option   *string `json:"option"`
	IsReview bool    `json:"is_review"`
}

func loadTestWithQuestions(testID string) (*models.Test, []models.Question, error) {
	var test models.Test
	if err := database.DB.Preload("Subject").First(&test, "id = ?", testID).Error; err != nil {
		return nil, nil, err
	}

	var questions []models.Question
	if err := database.DB.Where("test_id = ?", test.ID).
		Order("sort_order asc, created_at asc").
		Find(&questions).Error; err != nil {
		return nil, nil, err
	}
	return &test, questions, nil
}

func answeredCount(userID, testID uuid.UUID) int64 {
	var answered int64
	database.DB.Model(&models.Attempt{}).
		Joins("JOIN questions ON attempts.question_id = questions.id").
		Where("attempts.user_id = ? AND questions.test_id = ?", userID, testID).
		Count(&answered)
	return answered
}

func resultPath(testID uuid.UUID) string {
	return fmt.Sprintf("/api/v1/tests/%s/result", testID)
}

func StartTest(c *fiber.Ctx) error {
	test, questions, err := loadTestWithQuestions(c.Params("testId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	remaining := time.Until(test.EndsAt())
	if remaining < 0 {
		remaining = 0
	}

	return c.JSON(fiber.Map{
		"test_id":                test.ID,
		"test_name":              test.Name,
		"subject_name":           test.Subject.Name,
		"duration_minutes":       test.DurationMinutes,
		"total_questions":        len(questions),
		"q_index":                0,
		"test_active":            remaining > 0,
		"time_remaining_seconds": int(remaining.Seconds()),
	})
}

func GetQuestion(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	test, questions, err := loadTestWithQuestions(c.Params("testId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	qIndex, err := strconv.Atoi(c.Params("qIndex"))
	if err != nil || qIndex < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question index"})
	}

	total := len(questions)
	// Past the last question means the walk is over; hand off to scoring.
	if qIndex >= total {
		return c.Redirect(resultPath(test.ID), fiber.StatusSeeOther)
	}

	question := questions[qIndex]
	answered := answeredCount(userID, test.ID)

	remaining := time.Until(test.EndsAt())
	if remaining < 0 {
		remaining = 0
	}

	resp := fiber.Map{
		"q_index": qIndex,
		"total":   total,
		"question": fiber.Map{
			"id":      question.ID,
			"text":    question.Text,
			"option1": question.Option1,
			"option2": question.Option2,
			"option3": question.Option3,
			"option4": question.Option4,
		},
		"answered_count":         answered,
		"all_questions_answered": answered == int64(total),
		"test_active":            remaining > 0,
		"time_remaining_seconds": int(remaining.Seconds()),
		"submitted":              false,
	}

	var attempt models.Attempt
	if err := database.DB.
		Where("user_id = ? AND question_id = ?", userID, question.ID).
		First(&attempt).Error; err == nil {
		resp["submitted"] = true
		resp["is_correct"] = attempt.IsCorrect
		resp["selected_option"] = attempt.SelectedOption
		resp["reviewed"] = attempt.Reviewed
		resp["correct_option"] = question.CorrectOption
		resp["solution"] = question.Solution
	}

	return c.JSON(resp)
}

func SubmitAnswer(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	test, questions, err := loadTestWithQuestions(c.Params("testId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	qIndex, err := strconv.Atoi(c.Params("qIndex"))
	if err != nil || qIndex < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question index"})
	}

	total := len(questions)
	if qIndex >= total {
		return c.Redirect(resultPath(test.ID), fiber.StatusSeeOther)
	}

	// The attempt window closed with the test's own clock, not the user's.
	if !time.Now().Before(test.EndsAt()) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Test window has expired"})
	}

	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	question := questions[qIndex]
	attempt := models.Attempt{
		UserID:      userID,
		QuestionID:  question.ID,
		AttemptedAt: time.Now(),
	}

	if req.IsReview {
		// Marking for review discards any previously recorded answer.
		attempt.SelectedOption = nil
		attempt.IsCorrect = false
		attempt.Reviewed = true
	} else {
		if req.Option == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please select an option before submitting"})
		}
		selected, err := strconv.Atoi(*req.Option)
		if err != nil || selected < 1 || selected > 4 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid option selected"})
		}
		attempt.SelectedOption = &selected
		attempt.IsCorrect = selected == question.CorrectOption
		attempt.Reviewed = false
	}

	err = database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_option", "is_correct", "reviewed", "attempted_at"}),
	}).Create(&attempt).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record attempt"})
	}

	resp := fiber.Map{
		"q_index":  qIndex,
		"total":    total,
		"reviewed": attempt.Reviewed,
	}
	if !req.IsReview {
		resp["is_correct"] = attempt.IsCorrect
		resp["correct_option"] = question.CorrectOption
		resp["solution"] = question.Solution
	}

	if qIndex+1 < total {
		resp["completed"] = false
		resp["next_index"] = qIndex + 1
	} else {
		resp["completed"] = true
		resp["result_url"] = resultPath(test.ID)
	}

	return c.JSON(resp)
}
