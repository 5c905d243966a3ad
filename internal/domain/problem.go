package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TestCase is one hidden input/output pair used by the evaluator.
// Test cases are never exposed through the API; responses carry the count only.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

// TestCaseList stores test cases as a JSONB column.
type TestCaseList []TestCase

// Value implements driver.Valuer for GORM
func (l TestCaseList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for GORM
func (l *TestCaseList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for TestCaseList")
	}
}

// ContestProblem is one problem inside a contest, addressed by its index.
type ContestProblem struct {
	ContestID     uuid.UUID      `json:"contest_id" gorm:"type:uuid;primaryKey"`
	Index         int            `json:"index" gorm:"primaryKey;autoIncrement:false"`
	Title         string         `json:"title" gorm:"not null"`
	Points        int            `json:"points" gorm:"not null"`
	TimeLimitMs   int64          `json:"time_limit_ms" gorm:"default:2000"`
	MemoryLimitKb int64          `json:"memory_limit_kb" gorm:"default:262144"`
	Topics        pq.StringArray `json:"topics" gorm:"type:text[]"`
	TestCases     TestCaseList   `json:"-" gorm:"type:jsonb"`
}

// TableName specifies the table name for GORM
func (ContestProblem) TableName() string {
	return "contest_problems"
}

// Validate checks the fields a problem must carry before its contest can
// leave draft.
func (p *ContestProblem) Validate() error {
	if p.Title == "" {
		return NewDomainError(ErrBadRequest, "problem title is required")
	}
	if p.Points <= 0 {
		return NewDomainError(ErrBadRequest, "problem points must be positive")
	}
	return nil
}

// ContestProblemInput is the request shape for creating or replacing problems.
type ContestProblemInput struct {
	Title         string     `json:"title" binding:"required"`
	Points        int        `json:"points" binding:"required,min=1"`
	TimeLimitMs   int64      `json:"time_limit_ms"`
	MemoryLimitKb int64      `json:"memory_limit_kb"`
	Topics        []string   `json:"topics"`
	TestCases     []TestCase `json:"test_cases"`
}

// ToProblem converts an input to a ContestProblem at the given index.
func (in ContestProblemInput) ToProblem(contestID uuid.UUID, index int) ContestProblem {
	timeLimit := in.TimeLimitMs
	if timeLimit == 0 {
		timeLimit = 2000
	}
	memoryLimit := in.MemoryLimitKb
	if memoryLimit == 0 {
		memoryLimit = 262144
	}
	return ContestProblem{
		ContestID:     contestID,
		Index:         index,
		Title:         in.Title,
		Points:        in.Points,
		TimeLimitMs:   timeLimit,
		MemoryLimitKb: memoryLimit,
		Topics:        in.Topics,
		TestCases:     in.TestCases,
	}
}

// ContestProblemResponse represents a problem in API responses. Test case
// contents stay hidden; only the count is published.
type ContestProblemResponse struct {
	Index         int      `json:"index"`
	Title         string   `json:"title"`
	Points        int      `json:"points"`
	TimeLimitMs   int64    `json:"time_limit_ms"`
	MemoryLimitKb int64    `json:"memory_limit_kb"`
	Topics        []string `json:"topics"`
	TestCaseCount int      `json:"test_case_count"`
}

// ToResponse converts a ContestProblem to a ContestProblemResponse
func (p *ContestProblem) ToResponse() ContestProblemResponse {
	return ContestProblemResponse{
		Index:         p.Index,
		Title:         p.Title,
		Points:        p.Points,
		TimeLimitMs:   p.TimeLimitMs,
		MemoryLimitKb: p.MemoryLimitKb,
		Topics:        p.Topics,
		TestCaseCount: len(p.TestCases),
	}
}
