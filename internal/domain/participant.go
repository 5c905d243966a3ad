package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Participant is a user's registration record within one contest.
// Score and SolvedProblems are denormalized copies of what the submission
// log implies; the log is the source of truth and both fields are
// recomputed from it after every scored submission.
type Participant struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContestID     uuid.UUID     `json:"contest_id" gorm:"type:uuid;not null;uniqueIndex:idx_contest_user"`
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_contest_user"`
	TeamName      string        `json:"team_name,omitempty"`
	RegisteredAt  time.Time     `json:"registered_at" gorm:"not null"`
	Score         int           `json:"score" gorm:"not null;default:0"`
	SolvedProblems pq.Int64Array `json:"solved_problems" gorm:"type:bigint[]"`
	Disqualified  bool          `json:"disqualified" gorm:"not null;default:false"`

	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (Participant) TableName() string {
	return "participants"
}

// HasSolved reports whether the participant's solved set contains the index.
func (p *Participant) HasSolved(problemIndex int) bool {
	for _, idx := range p.SolvedProblems {
		if int(idx) == problemIndex {
			return true
		}
	}
	return false
}

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// Register inserts the participant atomically with the capacity check.
	// maxParticipants of 0 means unlimited.
	Register(participant *Participant, maxParticipants int) error
	FindByContestAndUser(contestID, userID uuid.UUID) (*Participant, error)
	ListByContest(contestID uuid.UUID) ([]Participant, error)
	ListByUser(userID uuid.UUID) ([]Participant, error)
	CountByContest(contestID uuid.UUID) (int64, error)
	Update(participant *Participant) error
	Delete(contestID, userID uuid.UUID) error
}

// RegisterRequest is the body for joining a contest.
type RegisterRequest struct {
	TeamName string `json:"team_name" binding:"max=100"`
}

// ParticipantResponse represents a participant in API responses
type ParticipantResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	Username       string    `json:"username,omitempty"`
	TeamName       string    `json:"team_name,omitempty"`
	RegisteredAt   time.Time `json:"registered_at"`
	Score          int       `json:"score"`
	SolvedProblems []int     `json:"solved_problems"`
	Disqualified   bool      `json:"disqualified"`
}

// ToResponse converts a Participant to a ParticipantResponse
func (p *Participant) ToResponse() ParticipantResponse {
	solved := make([]int, len(p.SolvedProblems))
	for i, idx := range p.SolvedProblems {
		solved[i] = int(idx)
	}
	return ParticipantResponse{
		UserID:         p.UserID,
		Username:       p.User.Username,
		TeamName:       p.TeamName,
		RegisteredAt:   p.RegisteredAt,
		Score:          p.Score,
		SolvedProblems: solved,
		Disqualified:   p.Disqualified,
	}
}
