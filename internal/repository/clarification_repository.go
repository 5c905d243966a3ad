package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
)

// clarificationRepository implements domain.ClarificationRepository using GORM
type clarificationRepository struct {
	db *gorm.DB
}

// NewClarificationRepository creates a new clarification repository
func NewClarificationRepository(db *gorm.DB) domain.ClarificationRepository {
	return &clarificationRepository{db: db}
}

// Create creates a new clarification question
func (r *clarificationRepository) Create(clarification *domain.Clarification) error {
	return r.db.Create(clarification).Error
}

// FindByID finds a clarification by its ID
func (r *clarificationRepository) FindByID(id uuid.UUID) (*domain.Clarification, error) {
	var clarification domain.Clarification
	result := r.db.Where("id = ?", id).First(&clarification)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClarificationNotFound
		}
		return nil, result.Error
	}
	return &clarification, nil
}

// ListByContest returns all clarifications of a contest, oldest first
func (r *clarificationRepository) ListByContest(contestID uuid.UUID) ([]domain.Clarification, error) {
	var clarifications []domain.Clarification
	result := r.db.
		Where("contest_id = ?", contestID).
		Order("created_at ASC").
		Find(&clarifications)
	return clarifications, result.Error
}

// Update writes an answer to a clarification
func (r *clarificationRepository) Update(clarification *domain.Clarification) error {
	return r.db.Save(clarification).Error
}
