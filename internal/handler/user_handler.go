package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charansai0108/Skill-port-sub002/internal/middleware"
	"github.com/charansai0108/Skill-port-sub002/internal/service"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Me returns the authenticated user's profile
// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, user.ToResponse())
}

// ContestHistory returns the contests the caller has participated in
// GET /api/users/me/contests
func (h *UserHandler) ContestHistory(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}

	history, err := h.userService.GetContestHistory(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"contests": history})
}
