package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
)

// participantRepository implements domain.ParticipantRepository using GORM
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) domain.ParticipantRepository {
	return &participantRepository{db: db}
}

// Register inserts a participant inside one transaction with the capacity
// count. The contest row is locked so two concurrent registrations cannot
// both pass the capacity check, and the unique (contest_id, user_id) index
// backstops the duplicate check across processes.
func (r *participantRepository) Register(participant *domain.Participant, maxParticipants int) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var contest domain.Contest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", participant.ContestID).
			First(&contest).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrContestNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&domain.Participant{}).
			Where("contest_id = ?", participant.ContestID).
			Count(&count).Error; err != nil {
			return err
		}
		if maxParticipants > 0 && count >= int64(maxParticipants) {
			return domain.ErrContestFull
		}

		return tx.Create(participant).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

// FindByContestAndUser finds one participant entry; absence is not an error
func (r *participantRepository) FindByContestAndUser(contestID, userID uuid.UUID) (*domain.Participant, error) {
	var participant domain.Participant
	result := r.db.
		Preload("User").
		Where("contest_id = ? AND user_id = ?", contestID, userID).
		First(&participant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &participant, nil
}

// ListByContest returns the roster ordered by registration time
func (r *participantRepository) ListByContest(contestID uuid.UUID) ([]domain.Participant, error) {
	var participants []domain.Participant
	result := r.db.
		Preload("User").
		Where("contest_id = ?", contestID).
		Order("registered_at ASC").
		Find(&participants)
	return participants, result.Error
}

// ListByUser returns all registrations of one user
func (r *participantRepository) ListByUser(userID uuid.UUID) ([]domain.Participant, error) {
	var participants []domain.Participant
	result := r.db.
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		Find(&participants)
	return participants, result.Error
}

// CountByContest returns the number of registered participants
func (r *participantRepository) CountByContest(contestID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.Model(&domain.Participant{}).
		Where("contest_id = ?", contestID).
		Count(&count)
	return count, result.Error
}

// Update updates a participant's aggregate fields
func (r *participantRepository) Update(participant *domain.Participant) error {
	return r.db.Save(participant).Error
}

// Delete removes a participant entry
func (r *participantRepository) Delete(contestID, userID uuid.UUID) error {
	result := r.db.Delete(&domain.Participant{}, "contest_id = ? AND user_id = ?", contestID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotParticipant
	}
	return nil
}

// isUniqueViolation reports whether the error is a postgres unique
// constraint violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
