package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhanle/eqpractice/internal/dto"
	"github.com/minhanle/eqpractice/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessionService service.SessionService
}

func NewSessionController(sessionService service.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// GetSession godoc
// @Summary Get one practice session
// @Description Returns a session with system messages stripped from the transcript.
// @Tags Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 403 {object} dto.ErrorResponse "Session owned by another user"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (c *SessionController) GetSession(ctx *gin.Context) {
	sessionID := ctx.Param("session_id")

	resp, err := c.sessionService.GetSession(sessionID, userIDFrom(ctx))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, service.ErrSessionNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Str("sessionID", sessionID).Msg("GetSession: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch session"})
		}
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListSessions godoc
// @Summary List the requesting user's practice sessions
// @Description Paginated session history, newest first, system messages stripped.
// @Tags Sessions
// @Produce json
// @Param page query int false "Zero-based page index"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} dto.SessionListResponse
// @Failure 401 {object} dto.ErrorResponse "Missing user identity"
// @Router /sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	userID := userIDFrom(ctx)
	if userID == nil {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	resp, err := c.sessionService.ListSessions(*userID, page, limit)
	if err != nil {
		log.Error().Err(err).Str("userID", *userID).Msg("ListSessions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch sessions"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
