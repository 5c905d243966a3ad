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

type registrationFixture struct {
	svc     *RegistrationService
	clock   *clock
	contest *domain.Contest
}

func newRegistrationFixture(t *testing.T, maxParticipants int) *registrationFixture {
	t.Helper()

	clk := &clock{current: testBase}
	contests := newFakeContestRepo()
	participants := newFakeParticipantRepo()

	contest := &domain.Contest{
		CommunityID: uuid.New(),
		CreatedBy:   uuid.New(),
		Title:       "Open Round",
		Schedule: domain.Schedule{
			RegistrationStart: testBase,
			RegistrationEnd:   testBase.Add(24 * time.Hour),
			StartTime:         testBase.Add(48 * time.Hour),
			EndTime:           testBase.Add(51 * time.Hour),
		},
		Status:          domain.ContestStatusRegistrationOpen,
		MaxParticipants: maxParticipants,
	}
	require.NoError(t, contests.Create(contest))

	svc := NewRegistrationService(contests, participants, nil, testTracer, zap.NewNop())
	svc.now = clk.now

	return &registrationFixture{svc: svc, clock: clk, contest: contest}
}

func TestRegister(t *testing.T) {
	f := newRegistrationFixture(t, 0)
	userID := uuid.New()

	participant, err := f.svc.Register(context.Background(), f.contest.ID, userID, "solo")
	require.NoError(t, err)
	assert.Equal(t, userID, participant.UserID)
	assert.Equal(t, "solo", participant.TeamName)
	assert.Equal(t, 0, participant.Score)
}

func TestRegisterTwiceRejected(t *testing.T) {
	f := newRegistrationFixture(t, 0)
	userID := uuid.New()

	_, err := f.svc.Register(context.Background(), f.contest.ID, userID, "")
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), f.contest.ID, userID, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	participants, err := f.svc.ListParticipants(context.Background(), f.contest.ID)
	require.NoError(t, err)
	assert.Len(t, participants, 1)
}

func TestRegisterCapacityOne(t *testing.T) {
	f := newRegistrationFixture(t, 1)

	_, err := f.svc.Register(context.Background(), f.contest.ID, uuid.New(), "")
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), f.contest.ID, uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrContestFull)

	participants, err := f.svc.ListParticipants(context.Background(), f.contest.ID)
	require.NoError(t, err)
	assert.Len(t, participants, 1)
}

func TestRegisterOutsideWindow(t *testing.T) {
	f := newRegistrationFixture(t, 0)

	f.clock.set(f.contest.Schedule.RegistrationEnd.Add(time.Minute))
	_, err := f.svc.Register(context.Background(), f.contest.ID, uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrRegistrationClosed)
}

func TestRegisterStatusNotOpen(t *testing.T) {
	clk := &clock{current: testBase}
	contests := newFakeContestRepo()
	contest := &domain.Contest{
		Title: "Draft Round",
		Schedule: domain.Schedule{
			RegistrationStart: testBase,
			RegistrationEnd:   testBase.Add(time.Hour),
			StartTime:         testBase.Add(2 * time.Hour),
			EndTime:           testBase.Add(3 * time.Hour),
		},
		Status: domain.ContestStatusDraft,
	}
	require.NoError(t, contests.Create(contest))

	svc := NewRegistrationService(contests, newFakeParticipantRepo(), nil, testTracer, zap.NewNop())
	svc.now = clk.now

	_, err := svc.Register(context.Background(), contest.ID, uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrRegistrationClosed)
}

func TestLeaveBeforeStart(t *testing.T) {
	f := newRegistrationFixture(t, 0)
	userID := uuid.New()

	_, err := f.svc.Register(context.Background(), f.contest.ID, userID, "")
	require.NoError(t, err)

	require.NoError(t, f.svc.Leave(context.Background(), f.contest.ID, userID))

	participants, err := f.svc.ListParticipants(context.Background(), f.contest.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestLeaveAfterStartRejected(t *testing.T) {
	f := newRegistrationFixture(t, 0)
	userID := uuid.New()

	_, err := f.svc.Register(context.Background(), f.contest.ID, userID, "")
	require.NoError(t, err)

	f.clock.set(f.contest.Schedule.StartTime)
	err = f.svc.Leave(context.Background(), f.contest.ID, userID)
	assert.ErrorIs(t, err, domain.ErrContestStarted)
}

func TestLeaveNotRegistered(t *testing.T) {
	f := newRegistrationFixture(t, 0)

	err := f.svc.Leave(context.Background(), f.contest.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}
