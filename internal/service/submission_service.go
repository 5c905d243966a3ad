package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/evaluator"
	"github.com/charansai0108/Skill-port-sub002/internal/infrastructure"
)

// SubmissionService accepts solution attempts, scores them through the
// evaluator, and keeps participant aggregates consistent with the
// submission log
type SubmissionService struct {
	contestRepo     domain.ContestRepository
	participantRepo domain.ParticipantRepository
	submissionRepo  domain.SubmissionRepository
	evaluator       evaluator.Evaluator
	leaderboards    *LeaderboardService
	metrics         *infrastructure.TelemetryMetrics
	tracer          trace.Tracer
	logger          *zap.Logger
	now             func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	contestRepo domain.ContestRepository,
	participantRepo domain.ParticipantRepository,
	submissionRepo domain.SubmissionRepository,
	eval evaluator.Evaluator,
	leaderboards *LeaderboardService,
	metrics *infrastructure.TelemetryMetrics,
	tracer trace.Tracer,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		contestRepo:     contestRepo,
		participantRepo: participantRepo,
		submissionRepo:  submissionRepo,
		evaluator:       eval,
		leaderboards:    leaderboards,
		metrics:         metrics,
		tracer:          tracer,
		logger:          logger,
		now:             time.Now,
	}
}

// Submit records one attempt and scores it. The submission row is written
// before evaluation so a judge crash never loses the attempt, and the
// participant's aggregate score is recomputed from the persisted log
// afterwards, never incremented in memory.
func (s *SubmissionService) Submit(ctx context.Context, contestID, userID uuid.UUID, req *domain.SubmitRequest) (*domain.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionService.Submit")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("user.id", userID.String()),
		attribute.Int("problem.index", req.ProblemIndex),
		attribute.String("language", req.Language),
	)

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	// A contest past its start time is running even when no read has synced
	// the stored status yet.
	now := s.now()
	if applyClockTransitions(contest, now) {
		if err := s.contestRepo.Update(contest); err != nil {
			s.logger.Error("Failed to persist status transition",
				zap.String("contest_id", contest.ID.String()),
				zap.String("to", string(contest.Status)),
				zap.Error(err),
			)
		}
	}
	if contest.Status != domain.ContestStatusActive || contest.PhaseAt(now) != domain.PhaseRunning {
		return nil, domain.ErrContestNotRunning
	}

	participant, err := s.participantRepo.FindByContestAndUser(contestID, userID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, domain.ErrNotParticipant
	}
	if participant.Disqualified {
		return nil, domain.ErrParticipantDisqualified
	}

	problem := contest.ProblemAt(req.ProblemIndex)
	if problem == nil {
		return nil, domain.ErrInvalidProblemIndex
	}

	if contest.MaxAttempts > 0 {
		attempts, err := s.submissionRepo.CountAttempts(contestID, userID, req.ProblemIndex)
		if err != nil {
			return nil, err
		}
		if attempts >= int64(contest.MaxAttempts) {
			return nil, domain.ErrAttemptsExceeded
		}
	}

	submission := &domain.Submission{
		ContestID:      contestID,
		UserID:         userID,
		ProblemIndex:   req.ProblemIndex,
		Language:       req.Language,
		Code:           req.Code,
		Verdict:        domain.VerdictPending,
		TotalTestCases: len(problem.TestCases),
		SubmittedAt:    now,
	}
	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, err
	}

	result, err := s.evaluator.Evaluate(ctx, req.Code, req.Language, *problem)
	if err != nil {
		s.logger.Error("Evaluation failed",
			zap.String("submission_id", submission.ID.String()),
			zap.Error(err),
		)
		return nil, domain.WrapError(err, "evaluation failed")
	}

	submission.Verdict = result.Verdict
	submission.TestCasesPassed = result.TestCasesPassed
	submission.TotalTestCases = result.TotalTestCases
	submission.ExecutionTimeMs = result.ExecutionTimeMs
	submission.MemoryKb = result.MemoryKb
	submission.Score = domain.ScoreForVerdict(problem.Points, result.Verdict, result.TestCasesPassed, result.TotalTestCases)

	if err := s.submissionRepo.Update(submission); err != nil {
		return nil, err
	}

	if err := s.recomputeAggregate(participant); err != nil {
		s.logger.Error("Failed to recompute participant aggregate",
			zap.String("contest_id", contestID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	if s.metrics != nil {
		s.metrics.SubmissionsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("verdict", string(submission.Verdict))),
		)
	}
	if s.leaderboards != nil {
		s.leaderboards.Broadcast(ctx, contest)
	}

	s.logger.Info("Submission scored",
		zap.String("submission_id", submission.ID.String()),
		zap.String("contest_id", contestID.String()),
		zap.String("user_id", userID.String()),
		zap.String("verdict", string(submission.Verdict)),
		zap.Int("score", submission.Score),
	)

	return submission, nil
}

// recomputeAggregate folds the participant's persisted submission log into
// their denormalized score and solved set. Best score per problem only: a
// worse resubmission can never lower an earned score.
func (s *SubmissionService) recomputeAggregate(participant *domain.Participant) error {
	submissions, err := s.submissionRepo.ListByContestAndUser(participant.ContestID, participant.UserID)
	if err != nil {
		return err
	}

	best := domain.BestScores(submissions)
	total := 0
	solved := make([]int64, 0, len(best))
	for index, result := range best {
		total += result.Score
		if result.Score > 0 {
			solved = append(solved, int64(index))
		}
	}

	sort.Slice(solved, func(i, j int) bool { return solved[i] < solved[j] })

	participant.Score = total
	participant.SolvedProblems = solved
	return s.participantRepo.Update(participant)
}

// ListByContest returns all submissions of a contest, oldest first
func (s *SubmissionService) ListByContest(ctx context.Context, contestID uuid.UUID) ([]domain.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionService.ListByContest")
	defer span.End()

	if _, err := s.contestRepo.FindByID(contestID); err != nil {
		return nil, err
	}
	return s.submissionRepo.ListByContest(contestID)
}

// ListByParticipant returns one participant's submissions, oldest first
func (s *SubmissionService) ListByParticipant(ctx context.Context, contestID, userID uuid.UUID) ([]domain.Submission, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionService.ListByParticipant")
	defer span.End()

	if _, err := s.contestRepo.FindByID(contestID); err != nil {
		return nil, err
	}
	return s.submissionRepo.ListByContestAndUser(contestID, userID)
}
