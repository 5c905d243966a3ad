package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/evaluator"
)

type submissionFixture struct {
	svc          *SubmissionService
	judge        *fakeEvaluator
	contests     *fakeContestRepo
	participants *fakeParticipantRepo
	clock        *clock
	contest      *domain.Contest
	userID       uuid.UUID
}

func newSubmissionFixture(t *testing.T, maxAttempts int) *submissionFixture {
	t.Helper()

	clk := &clock{current: testBase.Add(48 * time.Hour)}
	contests := newFakeContestRepo()
	participants := newFakeParticipantRepo()
	submissions := newFakeSubmissionRepo()
	judge := &fakeEvaluator{}

	contest := &domain.Contest{
		CommunityID: uuid.New(),
		CreatedBy:   uuid.New(),
		Title:       "Active Round",
		Schedule: domain.Schedule{
			RegistrationStart: testBase,
			RegistrationEnd:   testBase.Add(24 * time.Hour),
			StartTime:         testBase.Add(48 * time.Hour),
			EndTime:           testBase.Add(51 * time.Hour),
		},
		Status:      domain.ContestStatusActive,
		MaxAttempts: maxAttempts,
		Problems: []domain.ContestProblem{
			{Index: 0, Title: "Two Sum", Points: 100, TestCases: domain.TestCaseList{{Input: "1", ExpectedOutput: "1"}}},
			{Index: 1, Title: "Graph Walk", Points: 200},
		},
	}
	require.NoError(t, contests.Create(contest))

	userID := uuid.New()
	require.NoError(t, participants.Register(&domain.Participant{
		ContestID:    contest.ID,
		UserID:       userID,
		RegisteredAt: testBase,
	}, 0))

	svc := NewSubmissionService(contests, participants, submissions, judge, nil, nil, testTracer, zap.NewNop())
	svc.now = clk.now

	return &submissionFixture{
		svc:          svc,
		judge:        judge,
		contests:     contests,
		participants: participants,
		clock:        clk,
		contest:      contest,
		userID:       userID,
	}
}

func (f *submissionFixture) submit(t *testing.T, problemIndex int) (*domain.Submission, error) {
	t.Helper()
	// Advance so submission timestamps stay strictly increasing.
	f.clock.set(f.clock.current.Add(time.Minute))
	return f.svc.Submit(context.Background(), f.contest.ID, f.userID, &domain.SubmitRequest{
		ProblemIndex: problemIndex,
		Language:     "go",
		Code:         "package main",
	})
}

func TestSubmitAccepted(t *testing.T) {
	f := newSubmissionFixture(t, 0)
	f.judge.queue(evaluator.Result{Verdict: domain.VerdictAccepted, TestCasesPassed: 1, TotalTestCases: 1, ExecutionTimeMs: 40})

	submission, err := f.submit(t, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictAccepted, submission.Verdict)
	assert.Equal(t, 100, submission.Score)

	participant, err := f.participants.FindByContestAndUser(f.contest.ID, f.userID)
	require.NoError(t, err)
	require.NotNil(t, participant)
	assert.Equal(t, 100, participant.Score)
	assert.Equal(t, []int64{0}, []int64(participant.SolvedProblems))
}

func TestSubmitBestScoreNeverRegresses(t *testing.T) {
	f := newSubmissionFixture(t, 0)
	f.judge.queue(
		evaluator.Result{Verdict: domain.VerdictWrongAnswer, TestCasesPassed: 0, TotalTestCases: 1},
		evaluator.Result{Verdict: domain.VerdictAccepted, TestCasesPassed: 1, TotalTestCases: 1},
		evaluator.Result{Verdict: domain.VerdictWrongAnswer, TestCasesPassed: 0, TotalTestCases: 1},
	)

	for i := 0; i < 3; i++ {
		_, err := f.submit(t, 0)
		require.NoError(t, err)
	}

	participant, err := f.participants.FindByContestAndUser(f.contest.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 100, participant.Score)
}

func TestSubmitPartialScore(t *testing.T) {
	f := newSubmissionFixture(t, 0)
	f.judge.queue(evaluator.Result{Verdict: domain.VerdictPartial, TestCasesPassed: 7, TotalTestCases: 10})

	submission, err := f.submit(t, 0)
	require.NoError(t, err)
	assert.Equal(t, 70, submission.Score)
}

func TestSubmitAttemptsCapped(t *testing.T) {
	f := newSubmissionFixture(t, 2)
	f.judge.queue(
		evaluator.Result{Verdict: domain.VerdictWrongAnswer, TotalTestCases: 1},
		evaluator.Result{Verdict: domain.VerdictWrongAnswer, TotalTestCases: 1},
	)

	for i := 0; i < 2; i++ {
		_, err := f.submit(t, 0)
		require.NoError(t, err)
	}

	_, err := f.submit(t, 0)
	assert.ErrorIs(t, err, domain.ErrAttemptsExceeded)

	// The cap is per problem, another problem still accepts attempts.
	_, err = f.submit(t, 1)
	assert.NoError(t, err)
}

func TestSubmitRequiresRunningContest(t *testing.T) {
	f := newSubmissionFixture(t, 0)

	f.clock.set(f.contest.Schedule.EndTime)
	_, err := f.svc.Submit(context.Background(), f.contest.ID, f.userID, &domain.SubmitRequest{
		ProblemIndex: 0, Language: "go", Code: "x",
	})
	assert.ErrorIs(t, err, domain.ErrContestNotRunning)
}

func TestSubmitAdmitsOverdueStart(t *testing.T) {
	f := newSubmissionFixture(t, 0)

	// The stored status never advanced past registration, but the clock did.
	stale := *f.contest
	stale.Status = domain.ContestStatusRegistrationClosed
	require.NoError(t, f.contests.Update(&stale))

	f.clock.set(f.contest.Schedule.StartTime.Add(time.Hour))
	f.judge.queue(evaluator.Result{Verdict: domain.VerdictAccepted, TestCasesPassed: 1, TotalTestCases: 1})

	submission, err := f.svc.Submit(context.Background(), f.contest.ID, f.userID, &domain.SubmitRequest{
		ProblemIndex: 0, Language: "go", Code: "package main",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictAccepted, submission.Verdict)

	// The clock-driven activation is persisted, not just applied in memory.
	synced, err := f.contests.FindByID(f.contest.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContestStatusActive, synced.Status)
}

func TestSubmitNonParticipantRejected(t *testing.T) {
	f := newSubmissionFixture(t, 0)

	_, err := f.svc.Submit(context.Background(), f.contest.ID, uuid.New(), &domain.SubmitRequest{
		ProblemIndex: 0, Language: "go", Code: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestSubmitDisqualifiedRejected(t *testing.T) {
	f := newSubmissionFixture(t, 0)

	participant, err := f.participants.FindByContestAndUser(f.contest.ID, f.userID)
	require.NoError(t, err)
	participant.Disqualified = true
	require.NoError(t, f.participants.Update(participant))

	_, err = f.submit(t, 0)
	assert.ErrorIs(t, err, domain.ErrParticipantDisqualified)
}

func TestSubmitUnknownProblemIndex(t *testing.T) {
	f := newSubmissionFixture(t, 0)

	_, err := f.submit(t, 7)
	assert.ErrorIs(t, err, domain.ErrInvalidProblemIndex)
}

func TestSubmitTimeoutBecomesTimeLimitExceeded(t *testing.T) {
	f := newSubmissionFixture(t, 0)

	slow := evaluator.WithTimeout(slowEvaluator{}, 10*time.Millisecond)
	f.svc.evaluator = slow

	submission, err := f.submit(t, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictTimeLimitExceeded, submission.Verdict)
	assert.Equal(t, 0, submission.Score)
}

// slowEvaluator blocks until the context deadline fires.
type slowEvaluator struct{}

func (slowEvaluator) Evaluate(ctx context.Context, code, language string, problem domain.ContestProblem) (*evaluator.Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
