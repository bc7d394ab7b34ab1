package handlers_test

import (
	"testing"

	"github.com/akashch1512/Prep-Tester/database"
	"github.com/akashch1512/Prep-Tester/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCatalogCRUD(t *testing.T) {
	requireTestDB(t)

	_, adminToken := createUser(t, "admin")

	branchName := uniqueName("Mechatronics")
	resp := doJSON(t, "POST", "/api/v1/admin/branches", adminToken, map[string]string{
		"name":        branchName,
		"description": "Hybrid engineering branch",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	branchBody := decodeJSON(t, resp)
	branchID := branchBody["id"].(string)

	// Duplicate branch names collide on the unique index.
	resp = doJSON(t, "POST", "/api/v1/admin/branches", adminToken, map[string]string{
		"name": branchName,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "POST", "/api/v1/admin/subjects", adminToken, map[string]string{
		"name":      uniqueName("Control Systems"),
		"branch_id": branchID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	subjectBody := decodeJSON(t, resp)
	subjectID := subjectBody["id"].(string)

	resp = doJSON(t, "POST", "/api/v1/admin/tests", adminToken, map[string]any{
		"name":       uniqueName("Midterm"),
		"subject_id": subjectID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	testBody := decodeJSON(t, resp)
	testID := testBody["id"].(string)
	assert.EqualValues(t, 60, testBody["duration_minutes"], "duration defaults when omitted")

	resp = doJSON(t, "POST", "/api/v1/admin/questions", adminToken, map[string]any{
		"test_id":        testID,
		"text":           "A PID controller's integral term removes what?",
		"option1":        "Overshoot",
		"option2":        "Steady-state error",
		"option3":        "Noise",
		"option4":        "Lag",
		"correct_option": 2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	questionBody := decodeJSON(t, resp)
	assert.EqualValues(t, 0, questionBody["sort_order"], "first question takes slot zero")

	resp = doJSON(t, "DELETE", "/api/v1/admin/questions/"+questionBody["id"].(string), adminToken, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var remaining int64
	require.NoError(t, database.DB.Model(&models.Question{}).Where("test_id = ?", testID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestAdminRoutesRejectStudents(t *testing.T) {
	requireTestDB(t)

	_, studentToken := createUser(t, "student")

	resp := doJSON(t, "POST", "/api/v1/admin/branches", studentToken, map[string]string{
		"name": uniqueName("Forbidden"),
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, "DELETE", "/api/v1/admin/tests/00000000-0000-0000-0000-000000000000", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminQuestionValidation(t *testing.T) {
	requireTestDB(t)

	_, adminToken := createUser(t, "admin")
	test := seedTest(t, []int{1}, 60)

	resp := doJSON(t, "POST", "/api/v1/admin/questions", adminToken, map[string]any{
		"test_id":        test.ID.String(),
		"text":           "Option five cannot be correct",
		"option1":        "A",
		"option2":        "B",
		"option3":        "C",
		"option4":        "D",
		"correct_option": 5,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
