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
)

func TestGetLeaderboardFreezeVisibility(t *testing.T) {
	clk := &clock{}
	contests := newFakeContestRepo()
	participants := newFakeParticipantRepo()
	submissions := newFakeSubmissionRepo()

	owner := Actor{ID: uuid.New(), Role: domain.RoleMentor}
	contest := &domain.Contest{
		CreatedBy: owner.ID,
		Title:     "Frozen Final",
		Schedule: domain.Schedule{
			RegistrationStart: testBase,
			RegistrationEnd:   testBase.Add(24 * time.Hour),
			StartTime:         testBase.Add(48 * time.Hour),
			EndTime:           testBase.Add(51 * time.Hour),
		},
		Status: domain.ContestStatusActive,
		Rules:  domain.Rules{FreezeLeaderboard: true, FreezeMinutes: 60},
	}
	require.NoError(t, contests.Create(contest))

	alice := uuid.New()
	require.NoError(t, participants.Register(&domain.Participant{
		ContestID:    contest.ID,
		UserID:       alice,
		RegisteredAt: testBase,
	}, 0))

	cutoff := contest.Schedule.EndTime.Add(-60 * time.Minute)
	require.NoError(t, submissions.Create(&domain.Submission{
		ContestID:    contest.ID,
		UserID:       alice,
		ProblemIndex: 0,
		Score:        50,
		SubmittedAt:  cutoff.Add(-time.Hour),
	}))
	require.NoError(t, submissions.Create(&domain.Submission{
		ContestID:    contest.ID,
		UserID:       alice,
		ProblemIndex: 0,
		Score:        100,
		SubmittedAt:  cutoff.Add(time.Minute),
	}))

	svc := NewLeaderboardService(contests, participants, submissions, nil, testTracer, zap.NewNop())
	svc.now = clk.now

	student := Actor{ID: uuid.New(), Role: domain.RoleStudent}

	// Inside the freeze window the public view hides the late improvement.
	clk.set(cutoff.Add(10 * time.Minute))
	frozen, err := svc.GetLeaderboard(context.Background(), student, contest.ID)
	require.NoError(t, err)
	require.Len(t, frozen, 1)
	assert.Equal(t, 50, frozen[0].TotalScore)
	assert.Equal(t, 2, frozen[0].Problems[0].Attempts)

	// The owner always sees the live board.
	live, err := svc.GetLeaderboard(context.Background(), owner, contest.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, live[0].TotalScore)

	// After the end the freeze lifts for everyone.
	clk.set(contest.Schedule.EndTime.Add(time.Minute))
	after, err := svc.GetLeaderboard(context.Background(), student, contest.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, after[0].TotalScore)
}

func TestGetLeaderboardUnknownContest(t *testing.T) {
	svc := NewLeaderboardService(newFakeContestRepo(), newFakeParticipantRepo(), newFakeSubmissionRepo(), nil, testTracer, zap.NewNop())

	_, err := svc.GetLeaderboard(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleStudent}, uuid.New())
	assert.ErrorIs(t, err, domain.ErrContestNotFound)
}
