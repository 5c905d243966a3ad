package domain

import (
	"time"

	"github.com/google/uuid"
)

// Clarification is a participant's question about a contest or one of its
// problems, optionally answered by the contest owner or an admin.
type Clarification struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContestID    uuid.UUID  `json:"contest_id" gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	ProblemIndex *int       `json:"problem_index,omitempty"`
	Question     string     `json:"question" gorm:"not null"`
	Answer       string     `json:"answer"`
	AnsweredBy   *uuid.UUID `json:"answered_by,omitempty" gorm:"type:uuid"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
	Public       bool       `json:"public" gorm:"not null;default:false"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Clarification) TableName() string {
	return "clarifications"
}

// Answered reports whether the clarification has been answered.
func (c *Clarification) Answered() bool {
	return c.AnsweredAt != nil
}

// ClarificationRepository defines the interface for clarification data access
type ClarificationRepository interface {
	Create(clarification *Clarification) error
	FindByID(id uuid.UUID) (*Clarification, error)
	ListByContest(contestID uuid.UUID) ([]Clarification, error)
	Update(clarification *Clarification) error
}

// AskClarificationRequest is the body for posting a clarification question.
type AskClarificationRequest struct {
	ProblemIndex *int   `json:"problem_index"`
	Question     string `json:"question" binding:"required,min=3,max=2000"`
}

// AnswerClarificationRequest is the body for answering a clarification.
type AnswerClarificationRequest struct {
	Answer string `json:"answer" binding:"required,min=1,max=2000"`
	Public bool   `json:"public"`
}
