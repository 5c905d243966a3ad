package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContestStatus represents the stored state of a contest
type ContestStatus string

const (
	ContestStatusDraft              ContestStatus = "draft"
	ContestStatusRegistrationOpen   ContestStatus = "registration_open"
	ContestStatusRegistrationClosed ContestStatus = "registration_closed"
	ContestStatusActive             ContestStatus = "active"
	ContestStatusCompleted          ContestStatus = "completed"
	ContestStatusCancelled          ContestStatus = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s ContestStatus) Terminal() bool {
	return s == ContestStatusCompleted || s == ContestStatusCancelled
}

// Rules holds the per-contest policy switches.
type Rules struct {
	AllowClarifications bool `json:"allow_clarifications" gorm:"default:true"`
	FreezeLeaderboard   bool `json:"freeze_leaderboard"`
	FreezeMinutes       int  `json:"freeze_minutes"`
}

// Contest represents a scheduled competitive event owned by a community
type Contest struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CommunityID uuid.UUID     `json:"community_id" gorm:"type:uuid;not null;index"`
	CreatedBy   uuid.UUID     `json:"created_by" gorm:"type:uuid;not null;index"`
	Title       string        `json:"title" gorm:"not null"`
	Description string        `json:"description"`
	Schedule    Schedule      `json:"schedule" gorm:"embedded"`
	Status      ContestStatus `json:"status" gorm:"type:varchar(25);not null;default:'draft'"`

	// 0 means unlimited for both limits.
	MaxParticipants int `json:"max_participants"`
	MaxAttempts     int `json:"max_attempts"`

	Rules Rules `json:"rules" gorm:"embedded;embeddedPrefix:rules_"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Problems []ContestProblem `json:"problems,omitempty" gorm:"foreignKey:ContestID"`
}

// TableName specifies the table name for GORM
func (Contest) TableName() string {
	return "contests"
}

// PhaseAt derives the contest's phase at the given instant. Terminal
// statuses override the clock: a cancelled contest is ended even if its
// end time lies in the future.
func (c *Contest) PhaseAt(now time.Time) Phase {
	if c.Status.Terminal() {
		return PhaseEnded
	}
	return DerivePhase(c.Schedule, now)
}

// IsOwner reports whether the given user created this contest.
func (c *Contest) IsOwner(userID uuid.UUID) bool {
	return c.CreatedBy == userID
}

// ProblemAt returns the problem with the given index, or nil when the
// index does not belong to this contest.
func (c *Contest) ProblemAt(index int) *ContestProblem {
	for i := range c.Problems {
		if c.Problems[i].Index == index {
			return &c.Problems[i]
		}
	}
	return nil
}

// ContestRepository defines the interface for contest data access
type ContestRepository interface {
	Create(contest *Contest) error
	FindByID(id uuid.UUID) (*Contest, error)
	FindByCommunity(communityID uuid.UUID) ([]Contest, error)
	FindAll() ([]Contest, error)
	Update(contest *Contest) error
	ReplaceProblems(contestID uuid.UUID, problems []ContestProblem) error
	Delete(id uuid.UUID) error
}

// CreateContestRequest represents the data needed to create a new contest
type CreateContestRequest struct {
	Title             string                 `json:"title" binding:"required,min=3,max=200"`
	Description       string                 `json:"description"`
	RegistrationStart time.Time              `json:"registration_start" binding:"required"`
	RegistrationEnd   time.Time              `json:"registration_end" binding:"required"`
	StartTime         time.Time              `json:"start_time" binding:"required"`
	EndTime           time.Time              `json:"end_time" binding:"required"`
	MaxParticipants   int                    `json:"max_participants" binding:"min=0"`
	MaxAttempts       int                    `json:"max_attempts" binding:"min=0"`
	Rules             Rules                  `json:"rules"`
	Problems          []ContestProblemInput  `json:"problems" binding:"dive"`
}

// ContestUpdate carries the editable contest fields. Nil pointers leave a
// field untouched, so each variant has exactly one code path in the service.
type ContestUpdate struct {
	Title           *string               `json:"title"`
	Description     *string               `json:"description"`
	Schedule        *Schedule             `json:"schedule"`
	MaxParticipants *int                  `json:"max_participants"`
	MaxAttempts     *int                  `json:"max_attempts"`
	Rules           *Rules                `json:"rules"`
	Problems        []ContestProblemInput `json:"problems"`
}

// ContestResponse represents a contest in API responses
type ContestResponse struct {
	ID              uuid.UUID                `json:"id"`
	CommunityID     uuid.UUID                `json:"community_id"`
	CreatedBy       uuid.UUID                `json:"created_by"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Schedule        Schedule                 `json:"schedule"`
	Status          ContestStatus            `json:"status"`
	Phase           Phase                    `json:"phase"`
	MaxParticipants int                      `json:"max_participants"`
	MaxAttempts     int                      `json:"max_attempts"`
	Rules           Rules                    `json:"rules"`
	Problems        []ContestProblemResponse `json:"problems"`
}

// ToResponse converts a Contest to a ContestResponse. The phase is derived
// at conversion time, never read from storage.
func (c *Contest) ToResponse(now time.Time) ContestResponse {
	problems := make([]ContestProblemResponse, len(c.Problems))
	for i := range c.Problems {
		problems[i] = c.Problems[i].ToResponse()
	}

	return ContestResponse{
		ID:              c.ID,
		CommunityID:     c.CommunityID,
		CreatedBy:       c.CreatedBy,
		Title:           c.Title,
		Description:     c.Description,
		Schedule:        c.Schedule,
		Status:          c.Status,
		Phase:           c.PhaseAt(now),
		MaxParticipants: c.MaxParticipants,
		MaxAttempts:     c.MaxAttempts,
		Rules:           c.Rules,
		Problems:        problems,
	}
}
