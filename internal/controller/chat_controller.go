package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhanle/eqpractice/internal/dto"
	"github.com/minhanle/eqpractice/internal/service"
	"github.com/rs/zerolog/log"
)

type ChatController struct {
	turnService       service.TurnService
	evaluationService service.EvaluationService
}

func NewChatController(turnService service.TurnService, evaluationService service.EvaluationService) *ChatController {
	return &ChatController{turnService: turnService, evaluationService: evaluationService}
}

// ProcessTurn godoc
// @Summary Create or continue a practice session
// @Description Sends the user's message into the role-play. Without a sessionId a new session is created from scenarioId; with one the session continues until the turn limit.
// @Tags Chat
// @Accept json
// @Produce json
// @Param turn body dto.TurnRequest true "Turn payload"
// @Success 200 {object} dto.TurnResponse
// @Failure 400 {object} dto.ErrorResponse "Missing message or ids"
// @Failure 403 {object} dto.ErrorResponse "Session owned by another user"
// @Failure 404 {object} dto.ErrorResponse "Scenario or session not found"
// @Failure 409 {object} dto.ErrorResponse "Session completed or turn limit reached"
// @Failure 500 {object} dto.ErrorResponse "Backend failure"
// @Router /chat [post]
func (c *ChatController) ProcessTurn(ctx *gin.Context) {
	var req dto.TurnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("ProcessTurn: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Message is required and cannot be empty"})
		return
	}

	resp, err := c.turnService.ProcessTurn(ctx.Request.Context(), userIDFrom(ctx), req)
	if err != nil {
		c.writeTurnError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *ChatController) writeTurnError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrMissingIDs):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrScenarioNotFound), errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrForbidden):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrSessionCompleted), errors.Is(err, service.ErrTurnLimitReached):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("ProcessTurn: unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process turn", Details: []string{err.Error()}})
	}
}

// Evaluate godoc
// @Summary Evaluate a completed practice session
// @Description Scores the transcript against the scenario rubric. Always answers 200 with an evaluation payload; internal failures yield a deterministic default so the client can always render a result.
// @Tags Chat
// @Accept json
// @Produce json
// @Param evaluation body dto.EvaluateRequest true "Session to evaluate"
// @Success 200 {object} dto.EvaluateResponse
// @Failure 400 {object} dto.ErrorResponse "Missing session id"
// @Router /eval [post]
func (c *ChatController) Evaluate(ctx *gin.Context) {
	var req dto.EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Session ID is required"})
		return
	}

	outcome := c.evaluationService.Evaluate(ctx.Request.Context(), req.SessionID)
	if outcome.Degraded {
		log.Warn().Str("sessionID", req.SessionID).Str("reason", outcome.Reason).Msg("Evaluate: returning degraded evaluation")
	}

	ctx.JSON(http.StatusOK, dto.EvaluateResponse{
		Success:    true,
		Evaluation: outcome.Result,
	})
}
