package handlers_test

import (
	"testing"

	"github.com/akashch1512/Prep-Tester/database"
	"github.com/akashch1512/Prep-Tester/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	requireTestDB(t)

	username := uniqueName("newuser")
	resp := doJSON(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "password123",
		"confirm_password": "password123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, username, body["username"])
	assert.Equal(t, "student", body["role"])

	var user models.User
	require.NoError(t, database.DB.Where("username = ?", username).First(&user).Error)

	var profile models.UserProfile
	require.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Nil(t, profile.BranchID, "a fresh profile has no branch selected")
	assert.Nil(t, profile.ProfilePictureURL)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	requireTestDB(t)

	username := uniqueName("mismatch")
	resp := doJSON(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "password123",
		"confirm_password": "different456",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)
	assert.Zero(t, count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	requireTestDB(t)

	user, _ := createUser(t, "student")

	resp := doJSON(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"username":         user.Username,
		"email":            uniqueName("other") + "@example.com",
		"password":         "password123",
		"confirm_password": "password123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	requireTestDB(t)

	user, _ := createUser(t, "student")

	resp := doJSON(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"username": user.Username,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	profileResp := doJSON(t, "GET", "/api/v1/profile/me", token, nil)
	assert.Equal(t, fiber.StatusOK, profileResp.StatusCode)
	profileResp.Body.Close()
}

func TestLoginWrongPassword(t *testing.T) {
	requireTestDB(t)

	user, _ := createUser(t, "student")

	resp := doJSON(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"username": user.Username,
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	requireTestDB(t)

	resp := doJSON(t, "GET", "/api/v1/history", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
