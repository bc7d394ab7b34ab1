package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/akashch1512/Prep-Tester/database"
	"github.com/akashch1512/Prep-Tester/models"
	"github.com/akashch1512/Prep-Tester/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ImageUploader is the external image host used for profile pictures. Set
// from main at startup; tests swap in a fake.
var ImageUploader services.ImageUploader

const maxProfilePictureBytes = 5 * 1024 * 1024

type UpdateProfileRequest struct {
	BranchID     *string `json:"branch_id"`
	AcademicYear *string `json:"academic_year"`
	MobileNumber *string `json:"mobile_number" validate:"omitempty,max=15"`
}

type SelectBranchRequest struct {
	BranchID string `json:"branch_id" validate:"required,uuid"`
}

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var profile models.UserProfile
	if err := database.DB.Preload("Branch").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var profile models.UserProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.BranchID != nil {
		branchID, err := uuid.Parse(*req.BranchID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please select a valid branch"})
		}
		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", branchID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please select a valid branch"})
		}
		profile.BranchID = &branchID
	}
	if req.AcademicYear != nil {
		profile.AcademicYear = req.AcademicYear
	}
	if req.MobileNumber != nil {
		profile.MobileNumber = req.MobileNumber
	}

	database.DB.Save(&profile)

	return c.JSON(profile)
}

func SelectBranch(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var req SelectBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please select a valid branch"})
	}

	var branch models.Branch
	if err := database.DB.First(&branch, "id = ?", req.BranchID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please select a valid branch"})
	}

	var profile models.UserProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	profile.BranchID = &branch.ID
	database.DB.Save(&profile)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Your branch has been set to %s", branch.Name),
		"profile": profile,
	})
}

// UploadProfilePicture pushes the image to the external host. Type and size
// are checked before the call; a failed upload leaves the prior URL intact.
func UploadProfilePicture(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var profile models.UserProfile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
	}

	file, err := c.FormFile("profile_picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Profile picture file is required"})
	}

	contentType := file.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please upload only JPEG or PNG images"})
	}
	if file.Size > maxProfilePictureBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File size too large. Please upload an image less than 5MB"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}

	if ImageUploader == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Image uploads are not configured"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	imageURL, err := ImageUploader.Upload(ctx, data)
	if err != nil {
		log.Printf("Profile picture upload failed for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to upload profile picture. Please try again."})
	}

	profile.ProfilePictureURL = &imageURL
	if err := database.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save profile picture"})
	}

	return c.JSON(fiber.Map{
		"message":             "Profile picture updated successfully",
		"profile_picture_url": imageURL,
	})
}

func GetProfileStats(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var testsTouched int64
	database.DB.Model(&models.Attempt{}).
		Joins("JOIN questions ON attempts.question_id = questions.id").
		Where("attempts.user_id = ?", userID).
		Distinct("questions.test_id").
		Count(&testsTouched)

	var totalAttempts, totalCorrect int64
	database.DB.Model(&models.Attempt{}).Where("user_id = ?", userID).Count(&totalAttempts)
	database.DB.Model(&models.Attempt{}).Where("user_id = ? AND is_correct", userID).Count(&totalCorrect)

	var recent []models.Attempt
	database.DB.Preload("Question.Test").
		Where("user_id = ?", userID).
		Order("attempted_at desc").
		Limit(5).
		Find(&recent)

	recentOut := make([]fiber.Map, 0, len(recent))
	for _, attempt := range recent {
		recentOut = append(recentOut, fiber.Map{
			"question_id":        attempt.QuestionID,
			"test_name":          attempt.Question.Test.Name,
			"is_correct":         attempt.IsCorrect,
			"reviewed":           attempt.Reviewed,
			"attempted_at":       attempt.AttemptedAt,
			"action_description": fmt.Sprintf("Attempted a question in %s", attempt.Question.Test.Name),
		})
	}

	return c.JSON(fiber.Map{
		"tests_attempted": testsTouched,
		"total_attempts":  totalAttempts,
		"total_correct":   totalCorrect,
		"average_score":   services.AveragePercent(int(totalCorrect), int(totalAttempts)),
		"recent_activity": recentOut,
	})
}
