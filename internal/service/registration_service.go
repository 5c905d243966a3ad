package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/infrastructure"
)

// RegistrationService admits users into contests under the capacity and
// timing constraints
type RegistrationService struct {
	contestRepo     domain.ContestRepository
	participantRepo domain.ParticipantRepository
	metrics         *infrastructure.TelemetryMetrics
	tracer          trace.Tracer
	logger          *zap.Logger
	now             func() time.Time
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	contestRepo domain.ContestRepository,
	participantRepo domain.ParticipantRepository,
	metrics *infrastructure.TelemetryMetrics,
	tracer trace.Tracer,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		contestRepo:     contestRepo,
		participantRepo: participantRepo,
		metrics:         metrics,
		tracer:          tracer,
		logger:          logger,
		now:             time.Now,
	}
}

// Register admits a user as a participant. Registering twice never creates
// a second entry: the pre-check catches it on one process, the unique
// (contest_id, user_id) index catches the race across processes, and both
// surface as ErrAlreadyRegistered.
func (s *RegistrationService) Register(ctx context.Context, contestID, userID uuid.UUID, teamName string) (*domain.Participant, error) {
	ctx, span := s.tracer.Start(ctx, "RegistrationService.Register")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("user.id", userID.String()),
	)

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if contest.Status != domain.ContestStatusRegistrationOpen || !contest.Schedule.RegistrationOpenAt(now) {
		return nil, domain.ErrRegistrationClosed
	}

	existing, err := s.participantRepo.FindByContestAndUser(contestID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyRegistered
	}

	participant := &domain.Participant{
		ContestID:    contestID,
		UserID:       userID,
		TeamName:     teamName,
		RegisteredAt: now,
		Score:        0,
	}
	if err := s.participantRepo.Register(participant, contest.MaxParticipants); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RegistrationsTotal.Add(ctx, 1)
	}

	s.logger.Info("Participant registered",
		zap.String("contest_id", contestID.String()),
		zap.String("user_id", userID.String()),
	)
	return participant, nil
}

// Leave withdraws a registration. Leaving is only possible before the
// contest starts; once it is running the roster is frozen so the
// leaderboard denominator cannot shrink mid-contest.
func (s *RegistrationService) Leave(ctx context.Context, contestID, userID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "RegistrationService.Leave")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("user.id", userID.String()),
	)

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return err
	}
	if domain.DerivePhase(contest.Schedule, s.now()) != domain.PhaseUpcoming {
		return domain.ErrContestStarted
	}

	if err := s.participantRepo.Delete(contestID, userID); err != nil {
		return err
	}

	s.logger.Info("Participant left contest",
		zap.String("contest_id", contestID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// ListParticipants returns the contest roster in registration order
func (s *RegistrationService) ListParticipants(ctx context.Context, contestID uuid.UUID) ([]domain.Participant, error) {
	ctx, span := s.tracer.Start(ctx, "RegistrationService.ListParticipants")
	defer span.End()

	if _, err := s.contestRepo.FindByID(contestID); err != nil {
		return nil, err
	}
	return s.participantRepo.ListByContest(contestID)
}
