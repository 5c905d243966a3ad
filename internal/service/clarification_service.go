package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
)

// AskClarification posts a question about a contest or one of its problems.
// Only registered participants may ask, and only before the contest ends.
func (s *ContestService) AskClarification(ctx context.Context, actor Actor, contestID uuid.UUID, req *domain.AskClarificationRequest) (*domain.Clarification, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.AskClarification")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("user.id", actor.ID.String()),
	)

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	if !contest.Rules.AllowClarifications {
		return nil, domain.ErrClarificationsOff
	}
	if contest.PhaseAt(s.now()) == domain.PhaseEnded {
		return nil, domain.ErrContestNotRunning
	}

	participant, err := s.participantRepo.FindByContestAndUser(contestID, actor.ID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, domain.ErrNotParticipant
	}

	if req.ProblemIndex != nil && contest.ProblemAt(*req.ProblemIndex) == nil {
		return nil, domain.ErrInvalidProblemIndex
	}

	clarification := &domain.Clarification{
		ContestID:    contestID,
		UserID:       actor.ID,
		ProblemIndex: req.ProblemIndex,
		Question:     req.Question,
		CreatedAt:    s.now(),
	}
	if err := s.clarificationRepo.Create(clarification); err != nil {
		return nil, err
	}

	s.logger.Info("Clarification asked",
		zap.String("contest_id", contestID.String()),
		zap.String("user_id", actor.ID.String()),
	)
	return clarification, nil
}

// AnswerClarification records an answer from the contest owner or an admin
func (s *ContestService) AnswerClarification(ctx context.Context, actor Actor, contestID, clarificationID uuid.UUID, req *domain.AnswerClarificationRequest) (*domain.Clarification, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.AnswerClarification")
	defer span.End()

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}
	if !canAdminister(contest, actor) {
		return nil, domain.ErrForbidden
	}

	clarification, err := s.clarificationRepo.FindByID(clarificationID)
	if err != nil {
		return nil, err
	}
	if clarification.ContestID != contestID {
		return nil, domain.ErrClarificationNotFound
	}

	now := s.now()
	clarification.Answer = req.Answer
	clarification.AnsweredBy = &actor.ID
	clarification.AnsweredAt = &now
	clarification.Public = req.Public

	if err := s.clarificationRepo.Update(clarification); err != nil {
		return nil, err
	}

	s.logger.Info("Clarification answered",
		zap.String("contest_id", contestID.String()),
		zap.String("clarification_id", clarificationID.String()),
	)
	return clarification, nil
}

// ListClarifications returns the clarifications visible to the actor:
// public ones and their own, or all of them for the owner and admins.
func (s *ContestService) ListClarifications(ctx context.Context, actor Actor, contestID uuid.UUID) ([]domain.Clarification, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.ListClarifications")
	defer span.End()

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	all, err := s.clarificationRepo.ListByContest(contestID)
	if err != nil {
		return nil, err
	}

	if canAdminister(contest, actor) {
		return all, nil
	}

	visible := make([]domain.Clarification, 0, len(all))
	for _, c := range all {
		if c.Public || c.UserID == actor.ID {
			visible = append(visible, c)
		}
	}
	return visible, nil
}
