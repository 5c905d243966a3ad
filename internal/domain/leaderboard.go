package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// LeaderboardEntry is one ranked row of a contest leaderboard. Entries are
// derived on every read from the submission log; they are never persisted.
type LeaderboardEntry struct {
	Rank         int                   `json:"rank"`
	UserID       uuid.UUID             `json:"user_id"`
	Username     string                `json:"username,omitempty"`
	TeamName     string                `json:"team_name,omitempty"`
	TotalScore   int                   `json:"total_score"`
	Problems     map[int]ProblemResult `json:"problems"`
	LastSolvedAt time.Time             `json:"last_solved_at,omitempty"`
	RegisteredAt time.Time             `json:"registered_at"`
}

// FreezeCutoff returns the instant after which submissions are hidden from
// the public leaderboard, and whether the freeze is in effect right now.
// The freeze only applies while the contest is running; once it ends, by
// clock or by a terminal status, the full board is visible to everyone.
func (c *Contest) FreezeCutoff(now time.Time) (time.Time, bool) {
	if !c.Rules.FreezeLeaderboard || c.Rules.FreezeMinutes <= 0 {
		return time.Time{}, false
	}
	cutoff := c.Schedule.EndTime.Add(-time.Duration(c.Rules.FreezeMinutes) * time.Minute)
	if c.PhaseAt(now) != PhaseRunning || now.Before(cutoff) {
		return time.Time{}, false
	}
	return cutoff, true
}

// BuildLeaderboard ranks participants from the submission log. It is a pure
// function: identical inputs always produce the identical ordering.
//
// Submissions must be ordered by SubmittedAt ascending. A non-nil cutoff
// excludes later submissions from scoring (their attempts still count),
// which implements the freeze projection without touching stored rows.
//
// Ordering: total score descending, then the earlier last-solved time, then
// the earlier registration. Entries tied on (score, lastSolvedAt) share a
// rank; the next distinct entry takes its positional rank.
func BuildLeaderboard(participants []Participant, submissions []Submission, cutoff *time.Time) []LeaderboardEntry {
	byUser := make(map[uuid.UUID][]Submission)
	for _, sub := range submissions {
		byUser[sub.UserID] = append(byUser[sub.UserID], sub)
	}

	entries := make([]LeaderboardEntry, 0, len(participants))
	for i := range participants {
		p := &participants[i]
		if p.Disqualified {
			continue
		}

		results := make(map[int]ProblemResult)
		for _, sub := range byUser[p.UserID] {
			r := results[sub.ProblemIndex]
			r.Attempts++
			if (cutoff == nil || !sub.SubmittedAt.After(*cutoff)) && sub.Score > r.Score {
				r.Score = sub.Score
				r.SolvedAt = sub.SubmittedAt
			}
			results[sub.ProblemIndex] = r
		}

		entry := LeaderboardEntry{
			UserID:       p.UserID,
			Username:     p.User.Username,
			TeamName:     p.TeamName,
			Problems:     results,
			RegisteredAt: p.RegisteredAt,
		}
		for _, r := range results {
			entry.TotalScore += r.Score
			if r.Score > 0 && r.SolvedAt.After(entry.LastSolvedAt) {
				entry.LastSolvedAt = r.SolvedAt
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if !a.LastSolvedAt.Equal(b.LastSolvedAt) {
			return a.LastSolvedAt.Before(b.LastSolvedAt)
		}
		return a.RegisteredAt.Before(b.RegisteredAt)
	})

	for i := range entries {
		if i > 0 &&
			entries[i].TotalScore == entries[i-1].TotalScore &&
			entries[i].LastSolvedAt.Equal(entries[i-1].LastSolvedAt) {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}

	return entries
}
