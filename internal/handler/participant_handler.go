package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
	"github.com/charansai0108/Skill-port-sub002/internal/middleware"
	"github.com/charansai0108/Skill-port-sub002/internal/service"
)

// ParticipantHandler handles contest registration HTTP requests
type ParticipantHandler struct {
	registrationService *service.RegistrationService
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(registrationService *service.RegistrationService) *ParticipantHandler {
	return &ParticipantHandler{
		registrationService: registrationService,
	}
}

// Register enrolls the caller in a contest
// POST /api/contests/:id/register
func (h *ParticipantHandler) Register(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	// Body is optional, a bare register is a solo entry
	var req domain.RegisterRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body", err)
			return
		}
	}

	participant, err := h.registrationService.Register(c.Request.Context(), id, actor.ID, req.TeamName)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, participant.ToResponse())
}

// Leave withdraws the caller from a contest before it starts
// DELETE /api/contests/:id/register
func (h *ParticipantHandler) Leave(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	if err := h.registrationService.Leave(c.Request.Context(), id, actor.ID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Registration withdrawn", nil)
}

// ListParticipants returns everyone registered for a contest
// GET /api/contests/:id/participants
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	id, ok := contestID(c)
	if !ok {
		return
	}

	participants, err := h.registrationService.ListParticipants(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]domain.ParticipantResponse, len(participants))
	for i := range participants {
		responses[i] = participants[i].ToResponse()
	}

	respondOK(c, http.StatusOK, gin.H{"participants": responses})
}
