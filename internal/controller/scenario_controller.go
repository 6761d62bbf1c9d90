package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhanle/eqpractice/internal/dto"
	"github.com/minhanle/eqpractice/internal/service"
	"github.com/rs/zerolog/log"
)

type ScenarioController struct {
	scenarioService service.ScenarioService
}

func NewScenarioController(scenarioService service.ScenarioService) *ScenarioController {
	return &ScenarioController{scenarioService: scenarioService}
}

// GenerateScenario godoc
// @Summary Generate a new practice scenario
// @Description Asks the generative backend for a scenario (character, objective, rubric) and stores it.
// @Tags Scenarios
// @Accept json
// @Produce json
// @Param request body dto.GenerateScenarioRequest true "Domain, difficulty and focus skill"
// @Success 200 {object} dto.ScenarioResponse
// @Failure 500 {object} dto.ErrorResponse "Generation or persistence failure"
// @Router /scenarios/generate [post]
func (c *ScenarioController) GenerateScenario(ctx *gin.Context) {
	var req dto.GenerateScenarioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.scenarioService.GenerateScenario(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("domain", req.Domain).Msg("GenerateScenario: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate scenario", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetScenario godoc
// @Summary Get a scenario by id
// @Tags Scenarios
// @Produce json
// @Param id path string true "Scenario ID"
// @Success 200 {object} dto.ScenarioResponse
// @Failure 404 {object} dto.ErrorResponse "Scenario not found"
// @Router /scenarios/{id} [get]
func (c *ScenarioController) GetScenario(ctx *gin.Context) {
	id := ctx.Param("id")

	resp, err := c.scenarioService.GetScenario(id)
	if err != nil {
		if errors.Is(err, service.ErrScenarioNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Str("scenarioID", id).Msg("GetScenario: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch scenario"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GenerateInitialMessage godoc
// @Summary Generate a character opening line
// @Description Produces the character's first line for a scenario, for use with the turn endpoint's priming mode.
// @Tags Scenarios
// @Produce json
// @Param id path string true "Scenario ID"
// @Success 200 {object} dto.InitialMessageResponse
// @Failure 404 {object} dto.ErrorResponse "Scenario not found"
// @Failure 500 {object} dto.ErrorResponse "Generation failure"
// @Router /scenarios/{id}/initial-message [post]
func (c *ScenarioController) GenerateInitialMessage(ctx *gin.Context) {
	id := ctx.Param("id")

	message, err := c.scenarioService.GenerateInitialMessage(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrScenarioNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Str("scenarioID", id).Msg("GenerateInitialMessage: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate initial message"})
		return
	}
	ctx.JSON(http.StatusOK, dto.InitialMessageResponse{Message: message})
}
