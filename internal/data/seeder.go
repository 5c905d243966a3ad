package data

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
)

// Seeder handles database seeding operations
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSeeder creates a new database seeder
func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

// demoCommunityID keeps the seeded users and contest in one community
var demoCommunityID = uuid.MustParse("5f7c9f3e-0000-4000-8000-000000000001")

// SeedDemoData creates a demo admin, a mentor, two students and a sample
// contest. It is idempotent, seeding is skipped when users already exist.
func (s *Seeder) SeedDemoData() error {
	var count int64
	if err := s.db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.logger.Info("Users already seeded, skipping",
			zap.Int64("count", count),
		)
		return nil
	}

	s.logger.Info("Seeding demo data...")

	users := []struct {
		email    string
		username string
		role     domain.Role
	}{
		{"admin@skillport.dev", "admin", domain.RoleAdmin},
		{"mentor@skillport.dev", "mentor", domain.RoleMentor},
		{"alice@skillport.dev", "alice", domain.RoleStudent},
		{"bob@skillport.dev", "bob", domain.RoleStudent},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var mentorID uuid.UUID
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			user := domain.User{
				Email:        u.email,
				Username:     u.username,
				PasswordHash: string(hash),
				Role:         u.role,
				CommunityID:  demoCommunityID,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if u.role == domain.RoleMentor {
				mentorID = user.ID
			}
		}

		now := time.Now().UTC().Truncate(time.Hour)
		contest := domain.Contest{
			CommunityID: demoCommunityID,
			CreatedBy:   mentorID,
			Title:       "SkillPort Weekly Sprint",
			Description: "A short warm-up round for new community members.",
			Schedule: domain.Schedule{
				RegistrationStart: now.Add(24 * time.Hour),
				RegistrationEnd:   now.Add(72 * time.Hour),
				StartTime:         now.Add(96 * time.Hour),
				EndTime:           now.Add(99 * time.Hour),
			},
			Status:      domain.ContestStatusDraft,
			MaxAttempts: 5,
			Rules: domain.Rules{
				AllowClarifications: true,
				FreezeLeaderboard:   true,
				FreezeMinutes:       30,
			},
		}
		if err := tx.Create(&contest).Error; err != nil {
			return err
		}

		problems := []domain.ContestProblem{
			{
				ContestID:     contest.ID,
				Index:         0,
				Title:         "Two Sum",
				Points:        100,
				TimeLimitMs:   2000,
				MemoryLimitKb: 262144,
				Topics:        pq.StringArray{"arrays", "hash-table"},
				TestCases: domain.TestCaseList{
					{Input: "4\n2 7 11 15\n9", ExpectedOutput: "0 1"},
					{Input: "3\n3 2 4\n6", ExpectedOutput: "1 2"},
				},
			},
			{
				ContestID:     contest.ID,
				Index:         1,
				Title:         "Valid Parentheses",
				Points:        150,
				TimeLimitMs:   2000,
				MemoryLimitKb: 262144,
				Topics:        pq.StringArray{"stack", "strings"},
				TestCases: domain.TestCaseList{
					{Input: "()[]{}", ExpectedOutput: "true"},
					{Input: "(]", ExpectedOutput: "false"},
				},
			},
		}
		return tx.Create(&problems).Error
	})
	if err != nil {
		return err
	}

	s.logger.Info("Demo data seeded",
		zap.Int("users", len(users)),
		zap.String("community_id", demoCommunityID.String()),
	)
	return nil
}
