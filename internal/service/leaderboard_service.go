package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/ws"
)

// LeaderboardService produces ranked views of a contest. The ranking is
// recomputed from the submission log on every read; nothing here mutates
// stored rows.
type LeaderboardService struct {
	contestRepo     domain.ContestRepository
	participantRepo domain.ParticipantRepository
	submissionRepo  domain.SubmissionRepository
	hub             *ws.Hub
	tracer          trace.Tracer
	logger          *zap.Logger
	now             func() time.Time
}

// NewLeaderboardService creates a new leaderboard service. hub may be nil
// when live pushes are not wanted (tests, batch tools).
func NewLeaderboardService(
	contestRepo domain.ContestRepository,
	participantRepo domain.ParticipantRepository,
	submissionRepo domain.SubmissionRepository,
	hub *ws.Hub,
	tracer trace.Tracer,
	logger *zap.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		contestRepo:     contestRepo,
		participantRepo: participantRepo,
		submissionRepo:  submissionRepo,
		hub:             hub,
		tracer:          tracer,
		logger:          logger,
		now:             time.Now,
	}
}

// GetLeaderboard returns the ranked view visible to the actor. The owner
// and admins always see the live board; everyone else gets the frozen
// projection while the freeze window is in effect.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, actor Actor, contestID uuid.UUID) ([]domain.LeaderboardEntry, error) {
	ctx, span := s.tracer.Start(ctx, "LeaderboardService.GetLeaderboard")
	defer span.End()

	span.SetAttributes(attribute.String("contest.id", contestID.String()))

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	privileged := canAdminister(contest, actor)
	span.SetAttributes(attribute.Bool("leaderboard.privileged", privileged))

	return s.build(ctx, contest, privileged)
}

// Broadcast pushes the public (possibly frozen) leaderboard into the
// contest's websocket room.
func (s *LeaderboardService) Broadcast(ctx context.Context, contest *domain.Contest) {
	if s.hub == nil {
		return
	}

	entries, err := s.build(ctx, contest, false)
	if err != nil {
		s.logger.Error("Failed to build leaderboard for broadcast",
			zap.String("contest_id", contest.ID.String()),
			zap.Error(err),
		)
		return
	}
	s.hub.BroadcastToRoom(contest.ID.String(), "LEADERBOARD_UPDATED", entries)
}

func (s *LeaderboardService) build(ctx context.Context, contest *domain.Contest, privileged bool) ([]domain.LeaderboardEntry, error) {
	participants, err := s.participantRepo.ListByContest(contest.ID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.submissionRepo.ListByContest(contest.ID)
	if err != nil {
		return nil, err
	}

	var cutoff *time.Time
	if !privileged {
		if c, frozen := contest.FreezeCutoff(s.now()); frozen {
			cutoff = &c
		}
	}

	return domain.BuildLeaderboard(participants, submissions, cutoff), nil
}
