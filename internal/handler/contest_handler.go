package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/middleware"
	"github.com/charansai0108/Skill-port-sub002/internal/service"
)

// ContestHandler handles contest lifecycle HTTP requests
type ContestHandler struct {
	contestService *service.ContestService
	userService    *service.UserService
}

// NewContestHandler creates a new contest handler
func NewContestHandler(contestService *service.ContestService, userService *service.UserService) *ContestHandler {
	return &ContestHandler{
		contestService: contestService,
		userService:    userService,
	}
}

// contestID parses the :id path parameter
func contestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid contest ID", err)
		return uuid.Nil, false
	}
	return id, true
}

// CreateContest creates a draft contest in the caller's community
// POST /api/contests
func (h *ContestHandler) CreateContest(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	var req domain.CreateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	contest, err := h.contestService.CreateContest(c.Request.Context(), actor, user.CommunityID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, contest.ToResponse(time.Now()))
}

// GetContest returns a single contest by ID
// GET /api/contests/:id
func (h *ContestHandler) GetContest(c *gin.Context) {
	id, ok := contestID(c)
	if !ok {
		return
	}

	contest, err := h.contestService.GetContest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, contest.ToResponse(time.Now()))
}

// ListContests returns contests, optionally filtered by community
// GET /api/contests?community_id=...
func (h *ContestHandler) ListContests(c *gin.Context) {
	var communityID *uuid.UUID
	if raw := c.Query("community_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(c, "Invalid community ID", err)
			return
		}
		communityID = &id
	}

	contests, err := h.contestService.ListContests(c.Request.Context(), communityID)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	responses := make([]domain.ContestResponse, len(contests))
	for i := range contests {
		responses[i] = contests[i].ToResponse(now)
	}

	respondOK(c, http.StatusOK, gin.H{"contests": responses})
}

// UpdateContest applies a partial update to a contest
// PATCH /api/contests/:id
func (h *ContestHandler) UpdateContest(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	var update domain.ContestUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	contest, err := h.contestService.UpdateContest(c.Request.Context(), actor, id, &update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, contest.ToResponse(time.Now()))
}

// DeleteContest removes a contest and its dependent records
// DELETE /api/contests/:id
func (h *ContestHandler) DeleteContest(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	if err := h.contestService.DeleteContest(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Contest deleted", nil)
}

// transition runs one lifecycle operation and writes the updated contest
func (h *ContestHandler) transition(c *gin.Context, op func(actor service.Actor, id uuid.UUID) (*domain.Contest, error)) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	contest, err := op(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, contest.ToResponse(time.Now()))
}

// OpenRegistration moves a draft contest to registration_open
// POST /api/contests/:id/open-registration
func (h *ContestHandler) OpenRegistration(c *gin.Context) {
	h.transition(c, func(actor service.Actor, id uuid.UUID) (*domain.Contest, error) {
		return h.contestService.OpenRegistration(c.Request.Context(), actor, id)
	})
}

// CloseRegistration moves a contest to registration_closed
// POST /api/contests/:id/close-registration
func (h *ContestHandler) CloseRegistration(c *gin.Context) {
	h.transition(c, func(actor service.Actor, id uuid.UUID) (*domain.Contest, error) {
		return h.contestService.CloseRegistration(c.Request.Context(), actor, id)
	})
}

// StartContest activates a contest once its start time has passed
// POST /api/contests/:id/start
func (h *ContestHandler) StartContest(c *gin.Context) {
	h.transition(c, func(actor service.Actor, id uuid.UUID) (*domain.Contest, error) {
		return h.contestService.StartContest(c.Request.Context(), actor, id)
	})
}

// CompleteContest finalizes an active contest
// POST /api/contests/:id/complete
func (h *ContestHandler) CompleteContest(c *gin.Context) {
	h.transition(c, func(actor service.Actor, id uuid.UUID) (*domain.Contest, error) {
		return h.contestService.CompleteContest(c.Request.Context(), actor, id)
	})
}

// CancelContest cancels a non-terminal contest
// POST /api/contests/:id/cancel
func (h *ContestHandler) CancelContest(c *gin.Context) {
	h.transition(c, func(actor service.Actor, id uuid.UUID) (*domain.Contest, error) {
		return h.contestService.CancelContest(c.Request.Context(), actor, id)
	})
}

// AskClarification submits a participant question
// POST /api/contests/:id/clarifications
func (h *ContestHandler) AskClarification(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	var req domain.AskClarificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	clarification, err := h.contestService.AskClarification(c.Request.Context(), actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, clarification)
}

// AnswerClarification records an answer from a contest administrator
// POST /api/contests/:id/clarifications/:clarificationID/answer
func (h *ContestHandler) AnswerClarification(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}
	clarID, err := uuid.Parse(c.Param("clarificationID"))
	if err != nil {
		respondBadRequest(c, "Invalid clarification ID", err)
		return
	}

	var req domain.AnswerClarificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	clarification, err := h.contestService.AnswerClarification(c.Request.Context(), actor, id, clarID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, clarification)
}

// ListClarifications returns the clarifications visible to the caller
// GET /api/contests/:id/clarifications
func (h *ContestHandler) ListClarifications(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	clarifications, err := h.contestService.ListClarifications(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"clarifications": clarifications})
}
