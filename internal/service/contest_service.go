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

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	ID   uuid.UUID
	Role domain.Role
}

// ContestService owns contest configuration and the status state machine
type ContestService struct {
	contestRepo       domain.ContestRepository
	participantRepo   domain.ParticipantRepository
	clarificationRepo domain.ClarificationRepository
	metrics           *infrastructure.TelemetryMetrics
	tracer            trace.Tracer
	logger            *zap.Logger
	now               func() time.Time
}

// NewContestService creates a new contest service
func NewContestService(
	contestRepo domain.ContestRepository,
	participantRepo domain.ParticipantRepository,
	clarificationRepo domain.ClarificationRepository,
	metrics *infrastructure.TelemetryMetrics,
	tracer trace.Tracer,
	logger *zap.Logger,
) *ContestService {
	return &ContestService{
		contestRepo:       contestRepo,
		participantRepo:   participantRepo,
		clarificationRepo: clarificationRepo,
		metrics:           metrics,
		tracer:            tracer,
		logger:            logger,
		now:               time.Now,
	}
}

// canAdminister reports whether the actor may manage this contest.
func canAdminister(contest *domain.Contest, actor Actor) bool {
	return actor.Role == domain.RoleAdmin || contest.IsOwner(actor.ID)
}

// CreateContest creates a new contest in draft status
func (s *ContestService) CreateContest(ctx context.Context, actor Actor, communityID uuid.UUID, req *domain.CreateContestRequest) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.CreateContest")
	defer span.End()

	span.SetAttributes(
		attribute.String("user.id", actor.ID.String()),
		attribute.Int("problem.count", len(req.Problems)),
	)

	if !actor.Role.CanManageContests() {
		return nil, domain.ErrForbidden
	}

	schedule := domain.Schedule{
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	contest := &domain.Contest{
		CommunityID:     communityID,
		CreatedBy:       actor.ID,
		Title:           req.Title,
		Description:     req.Description,
		Schedule:        schedule,
		Status:          domain.ContestStatusDraft,
		MaxParticipants: req.MaxParticipants,
		MaxAttempts:     req.MaxAttempts,
		Rules:           req.Rules,
	}

	problems := make([]domain.ContestProblem, len(req.Problems))
	for i, in := range req.Problems {
		problems[i] = in.ToProblem(contest.ID, i)
		if err := problems[i].Validate(); err != nil {
			return nil, err
		}
	}
	contest.Problems = problems

	if err := s.contestRepo.Create(contest); err != nil {
		return nil, err
	}

	s.logger.Info("Contest created",
		zap.String("contest_id", contest.ID.String()),
		zap.String("created_by", actor.ID.String()),
		zap.Int("problem_count", len(problems)),
	)

	return contest, nil
}

// GetContest retrieves a contest by ID, applying any overdue clock-driven
// status transitions before returning it
func (s *ContestService) GetContest(ctx context.Context, contestID uuid.UUID) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.GetContest")
	defer span.End()

	span.SetAttributes(attribute.String("contest.id", contestID.String()))

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	s.syncStatus(contest)
	return contest, nil
}

// ListContests returns contests, optionally filtered by community
func (s *ContestService) ListContests(ctx context.Context, communityID *uuid.UUID) ([]domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.ListContests")
	defer span.End()

	var contests []domain.Contest
	var err error
	if communityID != nil {
		contests, err = s.contestRepo.FindByCommunity(*communityID)
	} else {
		contests, err = s.contestRepo.FindAll()
	}
	if err != nil {
		return nil, err
	}

	for i := range contests {
		s.syncStatus(&contests[i])
	}
	return contests, nil
}

// OpenRegistration moves a draft contest into registration
func (s *ContestService) OpenRegistration(ctx context.Context, actor Actor, contestID uuid.UUID) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.OpenRegistration")
	defer span.End()

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	if !canAdminister(contest, actor) {
		return nil, domain.ErrForbidden
	}
	if contest.Status != domain.ContestStatusDraft {
		return nil, domain.ErrInvalidTransition
	}
	if err := contest.Schedule.Validate(); err != nil {
		return nil, err
	}
	if len(contest.Problems) == 0 {
		return nil, domain.ErrNoProblems
	}

	contest.Status = domain.ContestStatusRegistrationOpen
	if err := s.contestRepo.Update(contest); err != nil {
		return nil, err
	}

	s.logger.Info("Registration opened", zap.String("contest_id", contestID.String()))
	return contest, nil
}

// CloseRegistration ends the registration window early
func (s *ContestService) CloseRegistration(ctx context.Context, actor Actor, contestID uuid.UUID) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.CloseRegistration")
	defer span.End()

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	if !canAdminister(contest, actor) {
		return nil, domain.ErrForbidden
	}
	if contest.Status != domain.ContestStatusRegistrationOpen {
		return nil, domain.ErrInvalidTransition
	}

	contest.Status = domain.ContestStatusRegistrationClosed
	if err := s.contestRepo.Update(contest); err != nil {
		return nil, err
	}

	s.logger.Info("Registration closed", zap.String("contest_id", contestID.String()))
	return contest, nil
}

// StartContest activates a contest. Starting before the scheduled start
// time is rejected: the clock, not the owner, decides when a contest may
// run, which keeps the stored status consistent with the derived phase.
func (s *ContestService) StartContest(ctx context.Context, actor Actor, contestID uuid.UUID) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.StartContest")
	defer span.End()

	span.SetAttributes(attribute.String("contest.id", contestID.String()))

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	if !canAdminister(contest, actor) {
		return nil, domain.ErrForbidden
	}

	switch contest.Status {
	case domain.ContestStatusDraft,
		domain.ContestStatusRegistrationOpen,
		domain.ContestStatusRegistrationClosed:
		// startable
	default:
		return nil, domain.ErrInvalidTransition
	}
	if s.now().Before(contest.Schedule.StartTime) {
		return nil, domain.ErrContestNotStarted
	}

	contest.Status = domain.ContestStatusActive
	if err := s.contestRepo.Update(contest); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ActiveContests.Add(ctx, 1)
	}
	s.logger.Info("Contest started", zap.String("contest_id", contestID.String()))
	return contest, nil
}

// CompleteContest finishes an active contest. Completing an already
// completed contest is a no-op, so retried requests stay harmless.
func (s *ContestService) CompleteContest(ctx context.Context, actor Actor, contestID uuid.UUID) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.CompleteContest")
	defer span.End()

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	if !canAdminister(contest, actor) {
		return nil, domain.ErrForbidden
	}

	if contest.Status == domain.ContestStatusCompleted {
		return contest, nil
	}
	if contest.Status != domain.ContestStatusActive {
		return nil, domain.ErrInvalidTransition
	}

	contest.Status = domain.ContestStatusCompleted
	if err := s.contestRepo.Update(contest); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ActiveContests.Add(ctx, -1)
	}
	s.logger.Info("Contest completed", zap.String("contest_id", contestID.String()))
	return contest, nil
}

// CancelContest aborts a contest from any non-terminal state, including
// while it is running
func (s *ContestService) CancelContest(ctx context.Context, actor Actor, contestID uuid.UUID) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.CancelContest")
	defer span.End()

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	if !canAdminister(contest, actor) {
		return nil, domain.ErrForbidden
	}
	if contest.Status.Terminal() {
		return nil, domain.ErrInvalidTransition
	}

	wasActive := contest.Status == domain.ContestStatusActive
	contest.Status = domain.ContestStatusCancelled
	if err := s.contestRepo.Update(contest); err != nil {
		return nil, err
	}

	if wasActive && s.metrics != nil {
		s.metrics.ActiveContests.Add(ctx, -1)
	}
	s.logger.Info("Contest cancelled", zap.String("contest_id", contestID.String()))
	return contest, nil
}

// UpdateContest applies a partial update. The problem list is frozen while
// the contest runs; every other field stays editable until completion,
// cancelled contests included. Only completion locks the record.
func (s *ContestService) UpdateContest(ctx context.Context, actor Actor, contestID uuid.UUID, update *domain.ContestUpdate) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.UpdateContest")
	defer span.End()

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	if !canAdminister(contest, actor) {
		return nil, domain.ErrForbidden
	}
	if contest.Status == domain.ContestStatusCompleted {
		return nil, domain.ErrInvalidTransition
	}

	now := s.now()
	if update.Problems != nil && contest.PhaseAt(now) == domain.PhaseRunning {
		return nil, domain.ErrImmutableDuringContest
	}

	if update.Title != nil {
		contest.Title = *update.Title
	}
	if update.Description != nil {
		contest.Description = *update.Description
	}
	if update.Schedule != nil {
		if err := update.Schedule.Validate(); err != nil {
			return nil, err
		}
		contest.Schedule = *update.Schedule
	}
	if update.MaxParticipants != nil {
		contest.MaxParticipants = *update.MaxParticipants
	}
	if update.MaxAttempts != nil {
		contest.MaxAttempts = *update.MaxAttempts
	}
	if update.Rules != nil {
		contest.Rules = *update.Rules
	}

	if update.Problems != nil {
		problems := make([]domain.ContestProblem, len(update.Problems))
		for i, in := range update.Problems {
			problems[i] = in.ToProblem(contest.ID, i)
			if err := problems[i].Validate(); err != nil {
				return nil, err
			}
		}
		if err := s.contestRepo.ReplaceProblems(contest.ID, problems); err != nil {
			return nil, err
		}
		contest.Problems = problems
	}

	if err := s.contestRepo.Update(contest); err != nil {
		return nil, err
	}

	s.logger.Info("Contest updated", zap.String("contest_id", contestID.String()))
	return contest, nil
}

// DeleteContest removes a contest and everything it owns. A running
// contest cannot be deleted.
func (s *ContestService) DeleteContest(ctx context.Context, actor Actor, contestID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "ContestService.DeleteContest")
	defer span.End()

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return err
	}
	if !canAdminister(contest, actor) {
		return domain.ErrForbidden
	}
	if contest.PhaseAt(s.now()) == domain.PhaseRunning {
		return domain.ErrContestRunning
	}

	if err := s.contestRepo.Delete(contestID); err != nil {
		return err
	}

	s.logger.Info("Contest deleted", zap.String("contest_id", contestID.String()))
	return nil
}

// applyClockTransitions advances the stored status through the transitions
// that became due since the last write: registration closes after its
// window, an opened contest activates at start time, an active one
// completes at end time. Drafts never advance on their own. Reports
// whether the status changed.
func applyClockTransitions(contest *domain.Contest, now time.Time) bool {
	original := contest.Status

	switch contest.Status {
	case domain.ContestStatusRegistrationOpen:
		if !now.Before(contest.Schedule.StartTime) {
			contest.Status = domain.ContestStatusActive
		} else if now.After(contest.Schedule.RegistrationEnd) {
			contest.Status = domain.ContestStatusRegistrationClosed
		}
	case domain.ContestStatusRegistrationClosed:
		if !now.Before(contest.Schedule.StartTime) {
			contest.Status = domain.ContestStatusActive
		}
	}
	if contest.Status == domain.ContestStatusActive && !now.Before(contest.Schedule.EndTime) {
		contest.Status = domain.ContestStatusCompleted
	}

	return contest.Status != original
}

// syncStatus persists any clock-driven transitions that became due
func (s *ContestService) syncStatus(contest *domain.Contest) {
	original := contest.Status
	if !applyClockTransitions(contest, s.now()) {
		return
	}
	if err := s.contestRepo.Update(contest); err != nil {
		s.logger.Error("Failed to persist status transition",
			zap.String("contest_id", contest.ID.String()),
			zap.String("from", string(original)),
			zap.String("to", string(contest.Status)),
			zap.Error(err),
		)
	}
}
