package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripflow/cache"
	sessionRepo "tripflow/database/repository/session"
	"tripflow/services/planner"
	"tripflow/utils"
)

// HandlerBundle carries the shared dependencies every handler needs.
type HandlerBundle struct {
	Engine      *planner.Engine
	SessionRepo sessionRepo.SessionRepository
	Cache       *cache.ResponseCache
}

type searchInput struct {
	UserRequest         string         `json:"userRequest" binding:"required"`
	SessionID           string         `json:"sessionId"`
	CustomerID          string         `json:"customerId"`
	EmailID             string         `json:"emailId"`
	Nationality         string         `json:"nationality"`
	ConversationContext map[string]any `json:"conversationContext"`
}

// SearchTravelHandler runs the full planning pipeline for a travel request.
func (hb *HandlerBundle) SearchTravelHandler(c *gin.Context) {
	var input searchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := hb.Engine.RunPlanning(c.Request.Context(), planner.PlanRequest{
		SessionID:           input.SessionID,
		UserRequest:         input.UserRequest,
		CustomerID:          input.CustomerID,
		EmailID:             input.EmailID,
		Nationality:         input.Nationality,
		ConversationContext: input.ConversationContext,
	})
	if err != nil {
		utils.GetLogger().Error("planning run failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "planning run failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSessionHandler returns the durable session record by id.
func (hb *HandlerBundle) GetSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	session, err := hb.SessionRepo.Load(sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "session not found", sessionID)
			return
		}
		utils.GetLogger().Error("session load failed", zap.String("session_id", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load session", err.Error())
		return
	}

	c.JSON(http.StatusOK, session)
}

// ConfirmTravelHandler confirms a draft itinerary and runs the compliance
// checks (visa, health, insurance, seat map).
func (hb *HandlerBundle) ConfirmTravelHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	result, err := hb.Engine.RunCompliance(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "session not found", sessionID)
			return
		}
		utils.JSONError(c, http.StatusConflict, "session not confirmable", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
