package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePercent(t *testing.T) {
	assert.Equal(t, 0, ScorePercent(0, 0), "zero-question test scores zero")
	assert.Equal(t, 0, ScorePercent(0, 3))
	assert.Equal(t, 66, ScorePercent(2, 3), "integer percentage is floored")
	assert.Equal(t, 100, ScorePercent(3, 3))
	assert.Equal(t, 33, ScorePercent(1, 3))
	assert.Equal(t, 50, ScorePercent(1, 2))
}

func TestTestStatus(t *testing.T) {
	assert.Equal(t, "Completed", TestStatus(3, 3))
	assert.Equal(t, "In Progress", TestStatus(2, 3))
	assert.Equal(t, "In Progress", TestStatus(0, 3))
	assert.Equal(t, "Completed", TestStatus(0, 0), "a test with no questions requires no attempts")
}

func TestAveragePercent(t *testing.T) {
	assert.Equal(t, 0.0, AveragePercent(0, 0))
	assert.Equal(t, 66.67, AveragePercent(2, 3), "rounded to two decimals")
	assert.Equal(t, 100.0, AveragePercent(5, 5))
	assert.Equal(t, 33.33, AveragePercent(1, 3))
}
