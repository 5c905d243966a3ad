package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreForVerdict(t *testing.T) {
	tests := []struct {
		name    string
		points  int
		verdict Verdict
		passed  int
		total   int
		want    int
	}{
		{"accepted earns full points", 100, VerdictAccepted, 10, 10, 100},
		{"wrong answer earns zero", 100, VerdictWrongAnswer, 9, 10, 0},
		{"time limit earns zero", 100, VerdictTimeLimitExceeded, 0, 10, 0},
		{"runtime error earns zero", 100, VerdictRuntimeError, 3, 10, 0},
		{"pending earns zero", 100, VerdictPending, 0, 10, 0},
		{"partial is floored", 100, VerdictPartial, 7, 10, 70},
		{"partial rounds down", 100, VerdictPartial, 1, 3, 33},
		{"partial with zero total", 100, VerdictPartial, 0, 0, 0},
		{"partial all passed", 250, VerdictPartial, 4, 4, 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreForVerdict(tt.points, tt.verdict, tt.passed, tt.total))
		})
	}
}

func TestBestScores(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

	sub := func(idx, score int, minute int) Submission {
		return Submission{
			UserID:       userID,
			ProblemIndex: idx,
			Score:        score,
			SubmittedAt:  base.Add(time.Duration(minute) * time.Minute),
		}
	}

	// Wrong answer, then accepted, then a worse retry. The best score must
	// stick to the accepted attempt and never regress.
	subs := []Submission{
		sub(0, 0, 1),
		sub(0, 100, 5),
		sub(0, 0, 9),
		sub(1, 40, 3),
		sub(1, 80, 7),
	}

	results := BestScores(subs)
	require.Len(t, results, 2)

	assert.Equal(t, 100, results[0].Score)
	assert.Equal(t, 3, results[0].Attempts)
	assert.Equal(t, base.Add(5*time.Minute), results[0].SolvedAt)

	assert.Equal(t, 80, results[1].Score)
	assert.Equal(t, 2, results[1].Attempts)
	assert.Equal(t, base.Add(7*time.Minute), results[1].SolvedAt)
}

func TestBestScoresEmpty(t *testing.T) {
	assert.Empty(t, BestScores(nil))
}
