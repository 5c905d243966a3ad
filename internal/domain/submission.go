package domain

import (
	"time"

	"github.com/google/uuid"
)

// Verdict is the outcome of evaluating one submission
type Verdict string

const (
	VerdictPending           Verdict = "pending"
	VerdictAccepted          Verdict = "accepted"
	VerdictWrongAnswer       Verdict = "wrong_answer"
	VerdictTimeLimitExceeded Verdict = "time_limit_exceeded"
	VerdictRuntimeError      Verdict = "runtime_error"
	VerdictPartial           Verdict = "partial"
)

// ScoreForVerdict applies the platform's fixed scoring rule: accepted earns
// the problem's full points, partial earns floor(points * passed / total),
// everything else earns zero.
func ScoreForVerdict(points int, verdict Verdict, passed, total int) int {
	switch verdict {
	case VerdictAccepted:
		return points
	case VerdictPartial:
		if total <= 0 {
			return 0
		}
		return points * passed / total
	default:
		return 0
	}
}

// Submission is one scored attempt by a participant at one problem.
// Rows are append-only: a submission's verdict and score are written once
// after evaluation and never altered by later attempts.
type Submission struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContestID       uuid.UUID `json:"contest_id" gorm:"type:uuid;not null;index:idx_sub_contest"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_sub_user"`
	ProblemIndex    int       `json:"problem_index" gorm:"not null"`
	Language        string    `json:"language" gorm:"type:varchar(30);not null"`
	Code            string    `json:"code" gorm:"not null"`
	Verdict         Verdict   `json:"verdict" gorm:"type:varchar(25);not null;default:'pending'"`
	Score           int       `json:"score" gorm:"not null;default:0"`
	TestCasesPassed int       `json:"test_cases_passed"`
	TotalTestCases  int       `json:"total_test_cases"`
	ExecutionTimeMs int64     `json:"execution_time_ms"`
	MemoryKb        int64     `json:"memory_kb"`
	SubmittedAt     time.Time `json:"submitted_at" gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (Submission) TableName() string {
	return "submissions"
}

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	Create(submission *Submission) error
	Update(submission *Submission) error
	FindByID(id uuid.UUID) (*Submission, error)
	ListByContest(contestID uuid.UUID) ([]Submission, error)
	ListByContestAndUser(contestID, userID uuid.UUID) ([]Submission, error)
	CountAttempts(contestID, userID uuid.UUID, problemIndex int) (int64, error)
}

// SubmitRequest is the body for submitting a solution.
type SubmitRequest struct {
	ProblemIndex int    `json:"problem_index" binding:"min=0"`
	Language     string `json:"language" binding:"required"`
	Code         string `json:"code" binding:"required"`
}

// SubmissionResponse represents a submission in API responses.
// Code is omitted from listings to keep responses small.
type SubmissionResponse struct {
	ID              uuid.UUID `json:"id"`
	ContestID       uuid.UUID `json:"contest_id"`
	UserID          uuid.UUID `json:"user_id"`
	ProblemIndex    int       `json:"problem_index"`
	Language        string    `json:"language"`
	Verdict         Verdict   `json:"verdict"`
	Score           int       `json:"score"`
	TestCasesPassed int       `json:"test_cases_passed"`
	TotalTestCases  int       `json:"total_test_cases"`
	ExecutionTimeMs int64     `json:"execution_time_ms"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// ToResponse converts a Submission to a SubmissionResponse
func (s *Submission) ToResponse() SubmissionResponse {
	return SubmissionResponse{
		ID:              s.ID,
		ContestID:       s.ContestID,
		UserID:          s.UserID,
		ProblemIndex:    s.ProblemIndex,
		Language:        s.Language,
		Verdict:         s.Verdict,
		Score:           s.Score,
		TestCasesPassed: s.TestCasesPassed,
		TotalTestCases:  s.TotalTestCases,
		ExecutionTimeMs: s.ExecutionTimeMs,
		SubmittedAt:     s.SubmittedAt,
	}
}

// BestScores folds a submission log into the best score achieved per
// problem, recording the earliest time each best was reached. Submissions
// must be ordered by SubmittedAt ascending.
func BestScores(submissions []Submission) map[int]ProblemResult {
	best := make(map[int]ProblemResult)
	for _, sub := range submissions {
		r := best[sub.ProblemIndex]
		r.Attempts++
		if sub.Score > r.Score {
			r.Score = sub.Score
			r.SolvedAt = sub.SubmittedAt
		}
		best[sub.ProblemIndex] = r
	}
	return best
}

// ProblemResult is the folded outcome for one participant on one problem.
type ProblemResult struct {
	Score    int       `json:"score"`
	Attempts int       `json:"attempts"`
	SolvedAt time.Time `json:"solved_at,omitempty"`
}
