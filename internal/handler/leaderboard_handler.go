package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/charansai0108/Skill-port-sub002/internal/middleware"
	"github.com/charansai0108/Skill-port-sub002/internal/service"
	"github.com/charansai0108/Skill-port-sub002/internal/ws"
)

// LeaderboardHandler handles leaderboard HTTP and websocket requests
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
	hub                *ws.Hub
	upgrader           websocket.Upgrader
	logger             *zap.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService, hub *ws.Hub, logger *zap.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		hub:                hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// GetLeaderboard returns the ranked standings for a contest. Organizers
// see live scores even while the board is frozen.
// GET /api/contests/:id/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	actor, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	id, ok := contestID(c)
	if !ok {
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"leaderboard": entries})
}

// Watch upgrades the connection and streams leaderboard updates for
// one contest room.
// GET /api/contests/:id/leaderboard/ws
func (h *LeaderboardHandler) Watch(c *gin.Context) {
	id, ok := contestID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed",
			zap.String("contest_id", id.String()),
			zap.Error(err),
		)
		return
	}

	h.hub.Join(conn, id.String())
}
