package services

import "math"

// ScorePercent is the integer (floored) percentage of correct answers over
// the full question set of a test. Zero-question tests score 0.
func ScorePercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(correct) / float64(total) * 100)
}

// TestStatus reports whether every question in the test has a recorded
// attempt. A zero-question test requires no attempts and counts as completed.
func TestStatus(attempted, total int) string {
	if attempted == total {
		return "Completed"
	}
	return "In Progress"
}

// AveragePercent is the overall correctness percentage across all of a
// user's attempts, rounded to two decimals.
func AveragePercent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*100*100) / 100
}
