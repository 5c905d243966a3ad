package domain

import "errors"

// Domain errors - these are business logic errors that should be translated
// to appropriate HTTP status codes by the handler layer

var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Contest errors
	ErrContestNotFound        = errors.New("contest not found")
	ErrInvalidSchedule        = errors.New("contest schedule is invalid")
	ErrNoProblems             = errors.New("contest has no problems")
	ErrInvalidTransition      = errors.New("status transition not allowed from current state")
	ErrContestNotStarted      = errors.New("contest start time has not been reached")
	ErrContestRunning         = errors.New("contest is currently running")
	ErrImmutableDuringContest = errors.New("problems cannot be changed while the contest is running")

	// Registration errors
	ErrRegistrationClosed      = errors.New("registration is closed for this contest")
	ErrAlreadyRegistered       = errors.New("user is already registered for this contest")
	ErrContestFull             = errors.New("contest has reached its participant limit")
	ErrContestStarted          = errors.New("contest has already started")
	ErrNotParticipant          = errors.New("user is not a participant in this contest")
	ErrParticipantDisqualified = errors.New("participant has been disqualified")

	// Submission errors
	ErrContestNotRunning   = errors.New("contest is not running")
	ErrInvalidProblemIndex = errors.New("problem index is out of range")
	ErrAttemptsExceeded    = errors.New("maximum attempts reached for this problem")
	ErrSubmissionNotFound  = errors.New("submission not found")

	// Clarification errors
	ErrClarificationNotFound = errors.New("clarification not found")
	ErrClarificationsOff     = errors.New("clarifications are disabled for this contest")

	// General errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
)

// DomainError wraps an error with additional context
type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with the given error and message
func NewDomainError(err error, message string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{
		Err:     err,
		Message: message,
	}
}
