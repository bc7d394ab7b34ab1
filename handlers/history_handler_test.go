package handlers_test

import (
	"fmt"
	"testing"

	"github.com/akashch1512/Prep-Tester/database"
	"github.com/akashch1512/Prep-Tester/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerAll(t *testing.T, token string, test models.Test, options []string) {
	t.Helper()
	for i, option := range options {
		resp := doJSON(t, "POST", questionPath(test, i), token, map[string]any{"option": option})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestHistoryAggregatesPerTest(t *testing.T) {
	requireTestDB(t)

	_, token := createUser(t, "student")
	completed := seedTest(t, []int{2, 1, 4}, 60)
	partial := seedTest(t, []int{1, 1}, 60)

	answerAll(t, token, completed, []string{"2", "3", "4"})
	answerAll(t, token, partial, []string{"1"})

	resp := doJSON(t, "GET", "/api/v1/history", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)

	rows, ok := body["history"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)

	byName := map[string]map[string]any{}
	for _, raw := range rows {
		row := raw.(map[string]any)
		byName[row["test_name"].(string)] = row
	}

	completedRow := byName[completed.Name]
	require.NotNil(t, completedRow)
	assert.Equal(t, float64(3), completedRow["total_attempted"])
	assert.Equal(t, float64(2), completedRow["correct_answers"])
	assert.Equal(t, float64(66), completedRow["score_percent"])
	assert.Equal(t, "Completed", completedRow["status"])

	partialRow := byName[partial.Name]
	require.NotNil(t, partialRow)
	assert.Equal(t, float64(1), partialRow["total_attempted"])
	assert.Equal(t, "In Progress", partialRow["status"])

	// Most recent activity comes first.
	first := rows[0].(map[string]any)
	assert.Equal(t, partial.Name, first["test_name"])
}

func TestDashboardRequiresBranchSelection(t *testing.T) {
	requireTestDB(t)

	user, token := createUser(t, "student")

	resp := doJSON(t, "GET", "/api/v1/dashboard", token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	test := seedTest(t, []int{2}, 60)
	var subject models.Subject
	require.NoError(t, database.DB.First(&subject, "id = ?", test.SubjectID).Error)

	branchResp := doJSON(t, "PUT", "/api/v1/profile/me/branch", token, map[string]string{
		"branch_id": subject.BranchID.String(),
	})
	require.Equal(t, fiber.StatusOK, branchResp.StatusCode)
	branchResp.Body.Close()

	answerAll(t, token, test, []string{"2"})

	resp = doJSON(t, "GET", "/api/v1/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)

	subjects := body["subjects"].([]any)
	require.Len(t, subjects, 1)
	tests := subjects[0].(map[string]any)["tests"].([]any)
	require.Len(t, tests, 1)

	row := tests[0].(map[string]any)
	assert.Equal(t, true, row["has_attempted"])
	assert.Equal(t, "100%", row["latest_score"])

	var profile models.UserProfile
	require.NoError(t, database.DB.Where("user_id = ?", user.ID).First(&profile).Error)
	require.NotNil(t, profile.BranchID)
}

func TestProfileStats(t *testing.T) {
	requireTestDB(t)

	_, token := createUser(t, "student")
	test := seedTest(t, []int{2, 1, 4}, 60)
	answerAll(t, token, test, []string{"2", "3", "4"})

	resp := doJSON(t, "GET", "/api/v1/profile/me/stats", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)

	assert.Equal(t, float64(1), body["tests_attempted"])
	assert.Equal(t, float64(3), body["total_attempts"])
	assert.Equal(t, float64(2), body["total_correct"])
	assert.Equal(t, 66.67, body["average_score"])

	recent := body["recent_activity"].([]any)
	require.Len(t, recent, 3)
	entry := recent[0].(map[string]any)
	assert.Equal(t, test.Name, entry["test_name"])
	assert.Contains(t, entry["action_description"], test.Name)

	resultURL := fmt.Sprintf("/api/v1/tests/%s/result", test.ID)
	resultResp := doJSON(t, "GET", resultURL, token, nil)
	assert.Equal(t, fiber.StatusOK, resultResp.StatusCode)
	resultResp.Body.Close()
}
