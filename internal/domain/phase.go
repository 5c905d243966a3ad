package domain

import "time"

// Phase is a contest's position in its schedule, derived from the clock.
// It is never stored: every reader recomputes it from the schedule so a
// stale status column can never disagree with the actual time.
type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhaseRunning  Phase = "running"
	PhaseEnded    Phase = "ended"
)

// Schedule holds the four timestamps that drive a contest's lifecycle.
// Invariant: RegistrationStart <= RegistrationEnd <= StartTime < EndTime.
type Schedule struct {
	RegistrationStart time.Time `json:"registration_start" gorm:"not null"`
	RegistrationEnd   time.Time `json:"registration_end" gorm:"not null"`
	StartTime         time.Time `json:"start_time" gorm:"not null;index"`
	EndTime           time.Time `json:"end_time" gorm:"not null"`
}

// Validate checks the schedule ordering invariant.
func (s Schedule) Validate() error {
	if s.RegistrationStart.IsZero() || s.RegistrationEnd.IsZero() || s.StartTime.IsZero() || s.EndTime.IsZero() {
		return ErrInvalidSchedule
	}
	if s.RegistrationStart.After(s.RegistrationEnd) {
		return ErrInvalidSchedule
	}
	if s.RegistrationEnd.After(s.StartTime) {
		return ErrInvalidSchedule
	}
	if !s.StartTime.Before(s.EndTime) {
		return ErrInvalidSchedule
	}
	return nil
}

// RegistrationOpenAt reports whether now falls inside the registration window.
func (s Schedule) RegistrationOpenAt(now time.Time) bool {
	return !now.Before(s.RegistrationStart) && !now.After(s.RegistrationEnd)
}

// DerivePhase computes the clock phase of a schedule. It is a pure function
// of its two arguments and the single source of truth for "is this contest
// running" checks everywhere in the codebase.
func DerivePhase(s Schedule, now time.Time) Phase {
	if now.Before(s.StartTime) {
		return PhaseUpcoming
	}
	if now.Before(s.EndTime) {
		return PhaseRunning
	}
	return PhaseEnded
}
