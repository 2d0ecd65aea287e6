package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lms_backend/internal/models"
)

func question(id, correct string) models.QuizQuestion {
	q := models.QuizQuestion{CorrectOption: correct}
	q.ID = id
	return q
}

func TestCountCorrectAnswers(t *testing.T) {
	questions := []models.QuizQuestion{
		question("q1", "A"),
		question("q2", "B"),
		question("q3", "C"),
	}

	tests := []struct {
		name    string
		answers map[string]string
		want    int
	}{
		{"all correct", map[string]string{"q1": "A", "q2": "B", "q3": "C"}, 3},
		{"case insensitive", map[string]string{"q1": "a", "q2": "b", "q3": "c"}, 3},
		{"partial", map[string]string{"q1": "A", "q2": "D"}, 1},
		{"unanswered count as wrong", map[string]string{"q2": "B"}, 1},
		{"no answers", map[string]string{}, 0},
		{"answer for unknown question ignored", map[string]string{"q9": "A"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countCorrectAnswers(questions, tt.answers))
		})
	}
}
