package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/infrastructure"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestUserService() (*UserService, *fakeUserRepo, *fakeParticipantRepo, *fakeContestRepo) {
	users := newFakeUserRepo()
	participants := newFakeParticipantRepo()
	contests := newFakeContestRepo()
	cfg := &infrastructure.JWTConfig{
		SecretKey:          "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "skillport-test",
	}
	svc := NewUserService(users, participants, contests, cfg, testTracer, zap.NewNop())
	return svc, users, participants, contests
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	user, tokens, err := svc.Register(context.Background(), &domain.UserCreateRequest{
		Email:    "alice@skillport.dev",
		Username: "alice",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	// Self registration never grants an elevated role.
	assert.Equal(t, domain.RoleStudent, user.Role)

	loggedIn, _, err := svc.Login(context.Background(), "alice@skillport.dev", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, err = svc.Login(context.Background(), "alice@skillport.dev", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	req := &domain.UserCreateRequest{Email: "bob@skillport.dev", Username: "bob", Password: "supersecret"}
	_, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc, users, _, _ := newTestUserService()

	user, tokens, err := svc.Register(context.Background(), &domain.UserCreateRequest{
		Email:    "carol@skillport.dev",
		Username: "carol",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// Promote and re-issue: the role claim must follow the user record.
	user.Role = domain.RoleMentor
	require.NoError(t, users.Update(user))
	_, mentorTokens, err := svc.Login(context.Background(), "carol@skillport.dev", "supersecret")
	require.NoError(t, err)

	id, role, err := svc.ValidateAccessToken(mentorTokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, domain.RoleMentor, role)

	// A refresh token is not an access token.
	_, _, err = svc.ValidateAccessToken(tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, _, err = svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	_, tokens, err := svc.Register(context.Background(), &domain.UserCreateRequest{
		Email:    "dave@skillport.dev",
		Username: "dave",
		Password: "supersecret",
	})
	require.NoError(t, err)

	fresh, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestGetContestHistory(t *testing.T) {
	svc, _, participants, contests := newTestUserService()
	userID := uuid.New()

	contest := &domain.Contest{Title: "Past Round", Status: domain.ContestStatusCompleted}
	require.NoError(t, contests.Create(contest))
	require.NoError(t, participants.Register(&domain.Participant{
		ContestID:      contest.ID,
		UserID:         userID,
		RegisteredAt:   testBase,
		Score:          150,
		SolvedProblems: []int64{0, 2},
	}, 0))

	history, err := svc.GetContestHistory(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Past Round", history[0].Title)
	assert.Equal(t, 150, history[0].Score)
	assert.Equal(t, 2, history[0].SolvedCount)
}
