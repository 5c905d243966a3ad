package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/evaluator"
)

// In-memory repository fakes. They mirror the behavior the Postgres
// implementations guarantee: capacity and uniqueness enforced inside
// Register, not-found sentinels, and submission lists ordered by
// submission time.

type fakeContestRepo struct {
	mu       sync.Mutex
	contests map[uuid.UUID]domain.Contest
}

func newFakeContestRepo() *fakeContestRepo {
	return &fakeContestRepo{contests: make(map[uuid.UUID]domain.Contest)}
}

func (r *fakeContestRepo) Create(contest *domain.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if contest.ID == uuid.Nil {
		contest.ID = uuid.New()
	}
	for i := range contest.Problems {
		contest.Problems[i].ContestID = contest.ID
	}
	r.contests[contest.ID] = *contest
	return nil
}

func (r *fakeContestRepo) FindByID(id uuid.UUID) (*domain.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	contest, ok := r.contests[id]
	if !ok {
		return nil, domain.ErrContestNotFound
	}
	return &contest, nil
}

func (r *fakeContestRepo) FindByCommunity(communityID uuid.UUID) ([]domain.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Contest
	for _, c := range r.contests {
		if c.CommunityID == communityID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContestRepo) FindAll() ([]domain.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Contest
	for _, c := range r.contests {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeContestRepo) Update(contest *domain.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contests[contest.ID]; !ok {
		return domain.ErrContestNotFound
	}
	r.contests[contest.ID] = *contest
	return nil
}

func (r *fakeContestRepo) ReplaceProblems(contestID uuid.UUID, problems []domain.ContestProblem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	contest, ok := r.contests[contestID]
	if !ok {
		return domain.ErrContestNotFound
	}
	contest.Problems = problems
	r.contests[contestID] = contest
	return nil
}

func (r *fakeContestRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contests[id]; !ok {
		return domain.ErrContestNotFound
	}
	delete(r.contests, id)
	return nil
}

type fakeParticipantRepo struct {
	mu           sync.Mutex
	participants []domain.Participant
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{}
}

func (r *fakeParticipantRepo) Register(participant *domain.Participant, maxParticipants int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, p := range r.participants {
		if p.ContestID == participant.ContestID {
			if p.UserID == participant.UserID {
				return domain.ErrAlreadyRegistered
			}
			count++
		}
	}
	if maxParticipants > 0 && count >= maxParticipants {
		return domain.ErrContestFull
	}

	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	r.participants = append(r.participants, *participant)
	return nil
}

func (r *fakeParticipantRepo) FindByContestAndUser(contestID, userID uuid.UUID) (*domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.ContestID == contestID && p.UserID == userID {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeParticipantRepo) ListByContest(contestID uuid.UUID) ([]domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Participant
	for _, p := range r.participants {
		if p.ContestID == contestID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) ListByUser(userID uuid.UUID) ([]domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Participant
	for _, p := range r.participants {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) CountByContest(contestID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.participants {
		if p.ContestID == contestID {
			count++
		}
	}
	return count, nil
}

func (r *fakeParticipantRepo) Update(participant *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.participants {
		if p.ID == participant.ID {
			r.participants[i] = *participant
			return nil
		}
	}
	return domain.ErrNotParticipant
}

func (r *fakeParticipantRepo) Delete(contestID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.participants {
		if p.ContestID == contestID && p.UserID == userID {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotParticipant
}

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	submissions []domain.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{}
}

func (r *fakeSubmissionRepo) Create(submission *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	r.submissions = append(r.submissions, *submission)
	return nil
}

func (r *fakeSubmissionRepo) Update(submission *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.submissions {
		if s.ID == submission.ID {
			r.submissions[i] = *submission
			return nil
		}
	}
	return domain.ErrSubmissionNotFound
}

func (r *fakeSubmissionRepo) FindByID(id uuid.UUID) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.submissions {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, domain.ErrSubmissionNotFound
}

func (r *fakeSubmissionRepo) ListByContest(contestID uuid.UUID) ([]domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Submission
	for _, s := range r.submissions {
		if s.ContestID == contestID {
			out = append(out, s)
		}
	}
	sortSubmissions(out)
	return out, nil
}

func (r *fakeSubmissionRepo) ListByContestAndUser(contestID, userID uuid.UUID) ([]domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Submission
	for _, s := range r.submissions {
		if s.ContestID == contestID && s.UserID == userID {
			out = append(out, s)
		}
	}
	sortSubmissions(out)
	return out, nil
}

func (r *fakeSubmissionRepo) CountAttempts(contestID, userID uuid.UUID, problemIndex int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, s := range r.submissions {
		if s.ContestID == contestID && s.UserID == userID && s.ProblemIndex == problemIndex {
			count++
		}
	}
	return count, nil
}

func sortSubmissions(subs []domain.Submission) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].SubmittedAt.Before(subs[j].SubmittedAt)
	})
}

type fakeClarificationRepo struct {
	mu             sync.Mutex
	clarifications []domain.Clarification
}

func newFakeClarificationRepo() *fakeClarificationRepo {
	return &fakeClarificationRepo{}
}

func (r *fakeClarificationRepo) Create(clarification *domain.Clarification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if clarification.ID == uuid.Nil {
		clarification.ID = uuid.New()
	}
	r.clarifications = append(r.clarifications, *clarification)
	return nil
}

func (r *fakeClarificationRepo) FindByID(id uuid.UUID) (*domain.Clarification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clarifications {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, domain.ErrClarificationNotFound
}

func (r *fakeClarificationRepo) ListByContest(contestID uuid.UUID) ([]domain.Clarification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Clarification
	for _, c := range r.clarifications {
		if c.ContestID == contestID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeClarificationRepo) Update(clarification *domain.Clarification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.clarifications {
		if c.ID == clarification.ID {
			r.clarifications[i] = *clarification
			return nil
		}
	}
	return domain.ErrClarificationNotFound
}

// fakeEvaluator returns canned results in submission order.
type fakeEvaluator struct {
	mu      sync.Mutex
	results []evaluator.Result
	err     error
}

func (e *fakeEvaluator) Evaluate(ctx context.Context, code, language string, problem domain.ContestProblem) (*evaluator.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	if len(e.results) == 0 {
		return &evaluator.Result{Verdict: domain.VerdictAccepted, TestCasesPassed: 1, TotalTestCases: 1}, nil
	}
	result := e.results[0]
	e.results = e.results[1:]
	return &result, nil
}

func (e *fakeEvaluator) queue(results ...evaluator.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results = append(e.results, results...)
}
