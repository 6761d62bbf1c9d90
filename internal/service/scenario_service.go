package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/minhanle/eqpractice/config"
	"github.com/minhanle/eqpractice/internal/dto"
	"github.com/minhanle/eqpractice/internal/model"
	"github.com/minhanle/eqpractice/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	scenarioGenTemperature = 0.5
	scenarioGenMaxTokens   = 1000
	openingTemperature     = 0.7
	openingMaxTokens       = 200
)

var difficultyLevels = map[string]int{
	"beginner":     1,
	"intermediate": 2,
	"advanced":     3,
}

// ScenarioService generates and serves practice scenarios.
type ScenarioService interface {
	GenerateScenario(ctx context.Context, req dto.GenerateScenarioRequest) (*dto.ScenarioResponse, error)
	GetScenario(id string) (*dto.ScenarioResponse, error)
	GenerateInitialMessage(ctx context.Context, scenarioID string) (string, error)
}

type scenarioService struct {
	scenarioRepo repository.ScenarioRepository
	llm          LLMService
	cfg          *config.Config
}

func NewScenarioService(scenarioRepo repository.ScenarioRepository, llm LLMService, cfg *config.Config) ScenarioService {
	return &scenarioService{scenarioRepo: scenarioRepo, llm: llm, cfg: cfg}
}

// generatedScenario is the JSON shape requested from the backend.
type generatedScenario struct {
	Title           string             `json:"title"`
	Objective       string             `json:"objective"`
	Character       model.Character    `json:"character"`
	ScenarioContext string             `json:"scenario_context"`
	SystemPrompt    string             `json:"system_prompt"`
	Rubric          []model.RubricItem `json:"rubric"`
}

func (s *scenarioService) GenerateScenario(ctx context.Context, req dto.GenerateScenarioRequest) (*dto.ScenarioResponse, error) {
	domain := req.Domain
	if domain == "" {
		domain = "workplace"
	}
	difficulty, ok := difficultyLevels[req.Difficulty]
	if !ok {
		difficulty = 1
	}
	skill := req.Skill
	if skill == "" {
		skill = "general communication"
	}

	prompt := buildScenarioGenPrompt(domain, difficulty, skill, s.cfg.Chat.ReplyLanguage)

	raw, err := s.llm.Complete(ctx, prompt, GenerateOptions{
		Model:        s.cfg.Chat.Model,
		Temperature:  scenarioGenTemperature,
		MaxTokens:    scenarioGenMaxTokens,
		JSONResponse: true,
	})
	if err != nil {
		log.Error().Err(err).Str("domain", domain).Msg("GenerateScenario: backend call failed")
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	data, err := extractJSONObject(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("GenerateScenario: could not extract scenario JSON")
		return nil, fmt.Errorf("generated scenario is not valid JSON: %w", err)
	}
	var content generatedScenario
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("generated scenario has wrong shape: %w", err)
	}
	if content.Title == "" || content.Character.Name == "" {
		return nil, fmt.Errorf("generated scenario is missing title or character")
	}
	if len(content.Rubric) == 0 {
		content.Rubric = genericRubric()
	}

	scenario := &model.Scenario{
		ID:              "dyn_" + uuid.NewString(),
		Title:           content.Title,
		Domain:          domain,
		Difficulty:      difficulty,
		Objective:       content.Objective,
		Character:       content.Character,
		ScenarioContext: content.ScenarioContext,
		SystemPrompt:    content.SystemPrompt,
		Rubric:          content.Rubric,
		Language:        s.cfg.Chat.ReplyLanguage,
	}

	if err := s.scenarioRepo.Create(scenario); err != nil {
		log.Error().Err(err).Str("scenarioID", scenario.ID).Msg("GenerateScenario: failed to insert scenario")
		return nil, fmt.Errorf("database error creating scenario: %w", err)
	}

	resp, err := scenarioToDTO(scenario)
	if err != nil {
		return nil, err
	}
	resp.ScenarioID = scenario.ID
	return resp, nil
}

func (s *scenarioService) GetScenario(id string) (*dto.ScenarioResponse, error) {
	scenario, err := s.scenarioRepo.FindByID(id)
	if err != nil {
		log.Warn().Err(err).Str("scenarioID", id).Msg("GetScenario: lookup failed")
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
	}
	return scenarioToDTO(scenario)
}

func (s *scenarioService) GenerateInitialMessage(ctx context.Context, scenarioID string) (string, error) {
	scenario, err := s.scenarioRepo.FindByID(scenarioID)
	if err != nil {
		log.Warn().Err(err).Str("scenarioID", scenarioID).Msg("GenerateInitialMessage: lookup failed")
		return "", fmt.Errorf("%w: %s", ErrScenarioNotFound, scenarioID)
	}

	prompt := BuildOpeningLinePrompt(scenario, scenario.Character)
	message, err := s.llm.Complete(ctx, prompt, GenerateOptions{
		Model:       s.cfg.Chat.Model,
		Temperature: openingTemperature,
		MaxTokens:   openingMaxTokens,
	})
	if err != nil {
		log.Error().Err(err).Str("scenarioID", scenarioID).Msg("GenerateInitialMessage: backend call failed")
		return "", fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	return strings.TrimSpace(message), nil
}

func buildScenarioGenPrompt(domain string, difficulty int, skill, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate an emotional-intelligence training scenario for the %s domain ", domain)
	fmt.Fprintf(&b, "(difficulty level: %d/3, focus skill: %s).\n\n", difficulty, skill)
	b.WriteString(`The response must be a valid JSON object with this structure:
{
  "title": "scenario title",
  "objective": "communication objective",
  "character": {
    "name": "character name",
    "role": "character role",
    "personality": "character personality (make it challenging)",
    "avatar": "one emoji",
    "background": "character background",
    "challenge": "what makes communicating with them hard"
  },
  "scenario_context": "scenario background description",
  "system_prompt": "role-play instruction for the character",
  "rubric": [
    {"criterion": "scoring criterion 1", "weight": 0.4},
    {"criterion": "scoring criterion 2", "weight": 0.3},
    {"criterion": "scoring criterion 3", "weight": 0.3}
  ]
}

Requirements:
- The character must be challenging (stubborn, sensitive, angry, impatient, ...)
- Create a conflict that takes emotional intelligence to resolve
`)
	fmt.Fprintf(&b, "- Write all content in %s\n", language)
	b.WriteString("- Return only the JSON, no other text")
	return b.String()
}

func scenarioToDTO(scenario *model.Scenario) (*dto.ScenarioResponse, error) {
	var resp dto.ScenarioResponse
	if err := copier.Copy(&resp, scenario); err != nil {
		log.Error().Err(err).Msg("Failed to copy Scenario model to ScenarioResponse")
		return nil, fmt.Errorf("error preparing scenario response: %w", err)
	}
	return &resp, nil
}
