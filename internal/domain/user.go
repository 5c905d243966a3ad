package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's role inside their community
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// CanManageContests reports whether the role may create or administer
// contests.
func (r Role) CanManageContests() bool {
	return r == RoleMentor || r == RoleAdmin
}

// User represents a registered member of a community
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"type:varchar(15);not null;default:'student'"`
	CommunityID  uuid.UUID `json:"community_id" gorm:"type:uuid;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserRepository defines the interface for user data access
// This abstraction allows for easy testing and swapping implementations
type UserRepository interface {
	Create(user *User) error
	FindByID(id uuid.UUID) (*User, error)
	FindByEmail(email string) (*User, error)
	Update(user *User) error
	Delete(id uuid.UUID) error
}

// UserCreateRequest represents the data needed to create a new user
type UserCreateRequest struct {
	Email       string    `json:"email" binding:"required,email"`
	Username    string    `json:"username" binding:"required,min=3,max=50"`
	Password    string    `json:"password" binding:"required,min=8"`
	CommunityID uuid.UUID `json:"community_id"`
}

// UserResponse represents the public user data returned by the API
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
	CommunityID uuid.UUID `json:"community_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts a User to a UserResponse (hides sensitive data)
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		CommunityID: u.CommunityID,
		CreatedAt:   u.CreatedAt,
	}
}

// ContestHistoryEntry is one row of a user's contest participation history.
type ContestHistoryEntry struct {
	ContestID    uuid.UUID     `json:"contest_id"`
	Title        string        `json:"title"`
	Status       ContestStatus `json:"status"`
	RegisteredAt time.Time     `json:"registered_at"`
	Score        int           `json:"score"`
	SolvedCount  int           `json:"solved_count"`
}
