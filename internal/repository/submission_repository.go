package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
)

// submissionRepository implements domain.SubmissionRepository using GORM
type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *gorm.DB) domain.SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create appends a new submission to the log
func (r *submissionRepository) Create(submission *domain.Submission) error {
	return r.db.Create(submission).Error
}

// Update writes a submission's evaluation result
func (r *submissionRepository) Update(submission *domain.Submission) error {
	return r.db.Save(submission).Error
}

// FindByID finds a submission by its ID
func (r *submissionRepository) FindByID(id uuid.UUID) (*domain.Submission, error) {
	var submission domain.Submission
	result := r.db.Where("id = ?", id).First(&submission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, result.Error
	}
	return &submission, nil
}

// ListByContest returns all submissions of a contest in submission order
func (r *submissionRepository) ListByContest(contestID uuid.UUID) ([]domain.Submission, error) {
	var submissions []domain.Submission
	result := r.db.
		Where("contest_id = ?", contestID).
		Order("submitted_at ASC").
		Find(&submissions)
	return submissions, result.Error
}

// ListByContestAndUser returns one participant's submissions in submission order
func (r *submissionRepository) ListByContestAndUser(contestID, userID uuid.UUID) ([]domain.Submission, error) {
	var submissions []domain.Submission
	result := r.db.
		Where("contest_id = ? AND user_id = ?", contestID, userID).
		Order("submitted_at ASC").
		Find(&submissions)
	return submissions, result.Error
}

// CountAttempts returns how many submissions a participant has made for one problem
func (r *submissionRepository) CountAttempts(contestID, userID uuid.UUID, problemIndex int) (int64, error) {
	var count int64
	result := r.db.Model(&domain.Submission{}).
		Where("contest_id = ? AND user_id = ? AND problem_index = ?", contestID, userID, problemIndex).
		Count(&count)
	return count, result.Error
}
