package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
)

// respondOK writes a success envelope with the given payload
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondMessage writes a success envelope with a message and optional payload
func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondBadRequest writes a 400 envelope with binding details
func respondBadRequest(c *gin.Context, message string, err error) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}

// statusByError maps domain sentinels to HTTP status codes. Anything not
// listed is treated as a server error.
var statusByError = map[error]int{
	domain.ErrBadRequest:              http.StatusBadRequest,
	domain.ErrInvalidSchedule:         http.StatusBadRequest,
	domain.ErrNoProblems:              http.StatusBadRequest,
	domain.ErrInvalidProblemIndex:     http.StatusBadRequest,
	domain.ErrUnauthorized:            http.StatusUnauthorized,
	domain.ErrInvalidCredentials:      http.StatusUnauthorized,
	domain.ErrInvalidToken:            http.StatusUnauthorized,
	domain.ErrForbidden:               http.StatusForbidden,
	domain.ErrParticipantDisqualified: http.StatusForbidden,
	domain.ErrUserNotFound:            http.StatusNotFound,
	domain.ErrContestNotFound:         http.StatusNotFound,
	domain.ErrSubmissionNotFound:      http.StatusNotFound,
	domain.ErrClarificationNotFound:   http.StatusNotFound,
	domain.ErrUserAlreadyExists:       http.StatusConflict,
	domain.ErrInvalidTransition:       http.StatusConflict,
	domain.ErrContestNotStarted:       http.StatusConflict,
	domain.ErrContestRunning:          http.StatusConflict,
	domain.ErrImmutableDuringContest:  http.StatusConflict,
	domain.ErrRegistrationClosed:      http.StatusConflict,
	domain.ErrAlreadyRegistered:       http.StatusConflict,
	domain.ErrContestFull:             http.StatusConflict,
	domain.ErrContestStarted:          http.StatusConflict,
	domain.ErrNotParticipant:          http.StatusConflict,
	domain.ErrContestNotRunning:       http.StatusConflict,
	domain.ErrAttemptsExceeded:        http.StatusConflict,
	domain.ErrClarificationsOff:       http.StatusConflict,
}

// respondError resolves a service error to an HTTP status and writes the
// error envelope. Unknown errors become a generic 500 so internals never
// leak to clients.
func respondError(c *gin.Context, err error) {
	for sentinel, status := range statusByError {
		if errors.Is(err, sentinel) {
			c.JSON(status, gin.H{
				"success": false,
				"message": sentinel.Error(),
			})
			return
		}
	}

	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}
