package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	variables := map[string]interface{}{
		"ready":  true,
		"paused": false,
		"status": "done",
		"count":  3,
		"empty":  "",
	}
	testCases := []struct {
		expr     string
		expected bool
	}{
		{"", true},
		{"ready", true},
		{"paused", false},
		{"!paused", true},
		{"!ready", false},
		{"missing", false},
		{"status", true},
		{"empty", false},
		{"status == done", true},
		{"status == 'done'", true},
		{"status == \"done\"", true},
		{"status != done", false},
		{"count == 3", true},
		{"count != 0", true},
		{"status == pending", false},
	}
	for _, testCase := range testCases {
		actual := Evaluate(testCase.expr, variables)
		assert.Equal(t, testCase.expected, actual, testCase.expr)
	}
}
