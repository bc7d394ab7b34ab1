package handlers

import (
	"fmt"
	"time"

	"github.com/akashch1512/Prep-Tester/database"
	"github.com/akashch1512/Prep-Tester/models"
	"github.com/akashch1512/Prep-Tester/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Scoring and history are pure read-side projections over attempt rows;
// nothing here mutates state.

func GetTestResult(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var test models.Test
	if err := database.DB.Preload("Subject").First(&test, "id = ?", c.Params("testId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	var totalInTest int64
	database.DB.Model(&models.Question{}).Where("test_id = ?", test.ID).Count(&totalInTest)

	var attempted, correct int64
	database.DB.Model(&models.Attempt{}).
		Joins("JOIN questions ON attempts.question_id = questions.id").
		Where("attempts.user_id = ? AND questions.test_id = ?", userID, test.ID).
		Count(&attempted)
	database.DB.Model(&models.Attempt{}).
		Joins("JOIN questions ON attempts.question_id = questions.id").
		Where("attempts.user_id = ? AND questions.test_id = ? AND attempts.is_correct", userID, test.ID).
		Count(&correct)

	return c.JSON(fiber.Map{
		"test_id":         test.ID,
		"test_name":       test.Name,
		"subject_name":    test.Subject.Name,
		"total_marks":     test.TotalMarks,
		"total_in_test":   totalInTest,
		"total_attempted": attempted,
		"correct":         correct,
		"percent":         services.ScorePercent(int(correct), int(totalInTest)),
		"status":          services.TestStatus(int(attempted), int(totalInTest)),
	})
}

type historyRow struct {
	TestID         uuid.UUID `json:"test_id"`
	TestName       string    `json:"test_name"`
	SubjectName    string    `json:"subject_name"`
	TotalMarks     int       `json:"total_marks"`
	TotalAttempted int       `json:"total_attempted"`
	CorrectAnswers int       `json:"correct_answers"`
	LatestAttempt  time.Time `json:"latest_attempt"`
}

func GetHistory(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var rows []historyRow
	database.DB.Model(&models.Attempt{}).
		Select(`tests.id AS test_id, tests.name AS test_name, subjects.name AS subject_name,
			tests.total_marks AS total_marks,
			COUNT(attempts.id) AS total_attempted,
			COUNT(attempts.id) FILTER (WHERE attempts.is_correct) AS correct_answers,
			MAX(attempts.attempted_at) AS latest_attempt`).
		Joins("JOIN questions ON attempts.question_id = questions.id").
		Joins("JOIN tests ON questions.test_id = tests.id").
		Joins("JOIN subjects ON tests.subject_id = subjects.id").
		Where("attempts.user_id = ?", userID).
		Group("tests.id, tests.name, subjects.name, tests.total_marks").
		Order("latest_attempt DESC").
		Scan(&rows)

	history := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		var totalQuestions int64
		database.DB.Model(&models.Question{}).Where("test_id = ?", row.TestID).Count(&totalQuestions)

		history = append(history, fiber.Map{
			"test_id":         row.TestID,
			"test_name":       row.TestName,
			"subject_name":    row.SubjectName,
			"total_marks":     row.TotalMarks,
			"total_questions": totalQuestions,
			"total_attempted": row.TotalAttempted,
			"correct_answers": row.CorrectAnswers,
			"score_percent":   services.ScorePercent(row.CorrectAnswers, int(totalQuestions)),
			"status":          services.TestStatus(row.TotalAttempted, int(totalQuestions)),
			"attempt_date":    row.LatestAttempt,
		})
	}

	return c.JSON(fiber.Map{"history": history})
}

// GetDashboard lists the user's branch catalog with per-test progress. The
// score label mirrors what the result page would show: a percentage once
// every question is answered, "In Progress" otherwise.
func GetDashboard(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var profile models.UserProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}
	if profile.BranchID == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":    "Please select your branch to view subjects and tests",
			"redirect": "/api/v1/branches",
		})
	}

	var branch models.Branch
	if err := database.DB.First(&branch, "id = ?", *profile.BranchID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
	}

	var subjects []models.Subject
	database.DB.Where("branch_id = ?", branch.ID).
		Preload("Tests").
		Order("name asc").
		Find(&subjects)

	subjectsOut := make([]fiber.Map, 0, len(subjects))
	for _, subject := range subjects {
		testsOut := make([]fiber.Map, 0, len(subject.Tests))
		for _, test := range subject.Tests {
			var totalQuestions int64
			database.DB.Model(&models.Question{}).Where("test_id = ?", test.ID).Count(&totalQuestions)

			var attempted, correct int64
			database.DB.Model(&models.Attempt{}).
				Joins("JOIN questions ON attempts.question_id = questions.id").
				Where("attempts.user_id = ? AND questions.test_id = ?", userID, test.ID).
				Count(&attempted)

			hasAttempted := attempted > 0
			var latestScore *string
			if hasAttempted {
				label := "In Progress"
				if totalQuestions > 0 && attempted == totalQuestions {
					database.DB.Model(&models.Attempt{}).
						Joins("JOIN questions ON attempts.question_id = questions.id").
						Where("attempts.user_id = ? AND questions.test_id = ? AND attempts.is_correct", userID, test.ID).
						Count(&correct)
					label = fmt.Sprintf("%d%%", services.ScorePercent(int(correct), int(totalQuestions)))
				}
				latestScore = &label
			}

			testsOut = append(testsOut, fiber.Map{
				"id":               test.ID,
				"name":             test.Name,
				"duration_minutes": test.DurationMinutes,
				"total_marks":      test.TotalMarks,
				"total_questions":  totalQuestions,
				"has_attempted":    hasAttempted,
				"latest_score":     latestScore,
			})
		}

		subjectsOut = append(subjectsOut, fiber.Map{
			"id":          subject.ID,
			"name":        subject.Name,
			"description": subject.Description,
			"tests":       testsOut,
		})
	}

	return c.JSON(fiber.Map{
		"branch":   fiber.Map{"id": branch.ID, "name": branch.Name},
		"subjects": subjectsOut,
	})
}
