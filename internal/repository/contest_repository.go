package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
)

// contestRepository implements domain.ContestRepository using GORM
type contestRepository struct {
	db *gorm.DB
}

// NewContestRepository creates a new contest repository
func NewContestRepository(db *gorm.DB) domain.ContestRepository {
	return &contestRepository{db: db}
}

// Create creates a new contest with its problems in the database
func (r *contestRepository) Create(contest *domain.Contest) error {
	return r.db.Create(contest).Error
}

// FindByID finds a contest by its ID with problems loaded in index order
func (r *contestRepository) FindByID(id uuid.UUID) (*domain.Contest, error) {
	var contest domain.Contest
	result := r.db.
		Preload("Problems", func(db *gorm.DB) *gorm.DB {
			return db.Order("contest_problems.index ASC")
		}).
		Where("id = ?", id).
		First(&contest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContestNotFound
		}
		return nil, result.Error
	}
	return &contest, nil
}

// FindByCommunity returns all contests of a community ordered by start time
func (r *contestRepository) FindByCommunity(communityID uuid.UUID) ([]domain.Contest, error) {
	var contests []domain.Contest
	result := r.db.
		Preload("Problems", func(db *gorm.DB) *gorm.DB {
			return db.Order("contest_problems.index ASC")
		}).
		Where("community_id = ?", communityID).
		Order("start_time DESC").
		Find(&contests)
	return contests, result.Error
}

// FindAll returns every contest ordered by start time
func (r *contestRepository) FindAll() ([]domain.Contest, error) {
	var contests []domain.Contest
	result := r.db.
		Preload("Problems", func(db *gorm.DB) *gorm.DB {
			return db.Order("contest_problems.index ASC")
		}).
		Order("start_time DESC").
		Find(&contests)
	return contests, result.Error
}

// Update updates an existing contest
func (r *contestRepository) Update(contest *domain.Contest) error {
	return r.db.Omit("Problems").Save(contest).Error
}

// ReplaceProblems swaps out the full problem list of a contest
func (r *contestRepository) ReplaceProblems(contestID uuid.UUID, problems []domain.ContestProblem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.ContestProblem{}, "contest_id = ?", contestID).Error; err != nil {
			return err
		}
		if len(problems) == 0 {
			return nil
		}
		for i := range problems {
			problems[i].ContestID = contestID
		}
		return tx.Create(&problems).Error
	})
}

// Delete removes a contest and everything it owns
func (r *contestRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Submission{}, "contest_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Participant{}, "contest_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Clarification{}, "contest_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.ContestProblem{}, "contest_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Contest{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrContestNotFound
		}
		return nil
	})
}
