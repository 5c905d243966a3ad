package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/middleware"
	"github.com/charansai0108/Skill-port-sub002/internal/service"
)

// SubmissionHandler handles submission HTTP requests
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// Submit evaluates a solution for one contest problem
// POST /api/contests/:id/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	var req domain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	submission, err := h.submissionService.Submit(c.Request.Context(), id, actor.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, submission.ToResponse())
}

// ListMine returns the caller's submissions for a contest
// GET /api/contests/:id/submissions/mine
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	submissions, err := h.submissionService.ListByParticipant(c.Request.Context(), id, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"submissions": toSubmissionResponses(submissions)})
}

// ListAll returns every submission in a contest. Mentor and admin only,
// enforced at the route.
// GET /api/contests/:id/submissions
func (h *SubmissionHandler) ListAll(c *gin.Context) {
	id, ok := contestID(c)
	if !ok {
		return
	}

	submissions, err := h.submissionService.ListByContest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"submissions": toSubmissionResponses(submissions)})
}

func toSubmissionResponses(submissions []domain.Submission) []domain.SubmissionResponse {
	responses := make([]domain.SubmissionResponse, len(submissions))
	for i := range submissions {
		responses[i] = submissions[i].ToResponse()
	}
	return responses
}
