package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minhanle/eqpractice/config"
	"github.com/minhanle/eqpractice/internal/dto"
	"github.com/minhanle/eqpractice/internal/model"
	"github.com/minhanle/eqpractice/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	turnTemperature = 0.7
	turnMaxTokens   = 300
)

// TurnService is the state machine governing session lifecycle: creation,
// message accumulation, turn counting and completion signalling.
type TurnService interface {
	ProcessTurn(ctx context.Context, userID *string, req dto.TurnRequest) (*dto.TurnResponse, error)
}

type turnService struct {
	scenarioRepo repository.ScenarioRepository
	sessionRepo  repository.SessionRepository
	llm          LLMService
	cfg          *config.Config
}

func NewTurnService(
	scenarioRepo repository.ScenarioRepository,
	sessionRepo repository.SessionRepository,
	llm LLMService,
	cfg *config.Config,
) TurnService {
	return &turnService{
		scenarioRepo: scenarioRepo,
		sessionRepo:  sessionRepo,
		llm:          llm,
		cfg:          cfg,
	}
}

func (s *turnService) ProcessTurn(ctx context.Context, userID *string, req dto.TurnRequest) (*dto.TurnResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}
	if req.SessionID == "" && req.ScenarioID == "" {
		return nil, ErrMissingIDs
	}

	if req.SessionID == "" {
		return s.createSession(ctx, userID, req)
	}
	return s.continueSession(ctx, userID, req)
}

// createSession handles the first turn of a session. Nothing is persisted
// until the backend reply is in hand, so a failed create leaves no trace.
func (s *turnService) createSession(ctx context.Context, userID *string, req dto.TurnRequest) (*dto.TurnResponse, error) {
	scenario, err := s.scenarioRepo.FindByID(req.ScenarioID)
	if err != nil {
		log.Warn().Err(err).Str("scenarioID", req.ScenarioID).Msg("ProcessTurn: scenario lookup failed")
		return nil, fmt.Errorf("%w: %s", ErrScenarioNotFound, req.ScenarioID)
	}

	sessionID := uuid.NewString()
	systemPrompt := BuildRolePlayPrompt(scenario, scenario.Character, PhaseOpening)

	// Priming mode: the session opens with an assistant line and no user
	// message yet; turn_count stays at zero.
	if req.IsInitializing {
		messages := model.MessageList{{Role: model.RoleSystem, Content: systemPrompt}}
		if req.InitialMessage != "" {
			messages = append(messages, model.Message{Role: model.RoleAssistant, Content: req.InitialMessage})
		}
		session := &model.Session{
			ID:         sessionID,
			ScenarioID: scenario.ID,
			UserID:     userID,
			Messages:   messages,
			TurnCount:  0,
			Status:     model.SessionStatusActive,
		}
		if err := s.sessionRepo.Create(session); err != nil {
			log.Error().Err(err).Str("sessionID", sessionID).Msg("ProcessTurn: failed to create primed session")
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		s.bumpPlayCount(scenario.ID)
		return &dto.TurnResponse{
			SessionID: sessionID,
			Reply:     req.InitialMessage,
			Turn:      0,
			Status:    model.SessionStatusActive,
		}, nil
	}

	userMessage := model.Message{Role: model.RoleUser, Content: req.Message}
	reply, err := s.llm.Chat(ctx, systemPrompt, []model.Message{userMessage}, GenerateOptions{
		Model:       s.cfg.Chat.Model,
		Temperature: turnTemperature,
		MaxTokens:   turnMaxTokens,
	})
	if err != nil {
		log.Error().Err(err).Str("scenarioID", scenario.ID).Msg("ProcessTurn: backend failed on first turn")
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	session := &model.Session{
		ID:         sessionID,
		ScenarioID: scenario.ID,
		UserID:     userID,
		Messages: model.MessageList{
			{Role: model.RoleSystem, Content: systemPrompt},
			userMessage,
			{Role: model.RoleAssistant, Content: reply},
		},
		TurnCount: 1,
		Status:    model.SessionStatusActive,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("ProcessTurn: failed to persist new session")
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.bumpPlayCount(scenario.ID)

	return &dto.TurnResponse{
		SessionID: sessionID,
		Reply:     reply,
		Turn:      1,
		Status:    model.SessionStatusActive,
	}, nil
}

func (s *turnService) continueSession(ctx context.Context, userID *string, req dto.TurnRequest) (*dto.TurnResponse, error) {
	session, err := s.sessionRepo.FindByIDWithScenario(req.SessionID)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", req.SessionID).Msg("ProcessTurn: session lookup failed")
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, req.SessionID)
	}

	if userID != nil && session.UserID != nil && *session.UserID != *userID {
		return nil, ErrForbidden
	}
	if session.Status == model.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}
	if session.TurnCount >= s.cfg.Chat.MaxTurns {
		return nil, ErrTurnLimitReached
	}

	scenario := &session.Scenario
	if scenario.ID == "" {
		// Preload can come back empty when the scenario row vanished; the
		// prompt builder falls back to a domain-default persona.
		scenario = &model.Scenario{ID: session.ScenarioID, Title: "conversation practice"}
	}

	systemPrompt := BuildRolePlayPrompt(scenario, scenario.Character, PhaseContinue)
	userMessage := model.Message{Role: model.RoleUser, Content: req.Message}

	// The persisted transcript keeps everything; the backend request is
	// truncated to the trailing window to bound token usage.
	updated := append(model.MessageList{{Role: model.RoleSystem, Content: systemPrompt}}, session.Messages.WithoutSystem()...)
	updated = append(updated, userMessage)
	window := updated.Tail(s.cfg.Chat.HistoryWindow)

	reply, err := s.llm.Chat(ctx, systemPrompt, window, GenerateOptions{
		Model:       s.cfg.Chat.Model,
		Temperature: turnTemperature,
		MaxTokens:   turnMaxTokens,
	})
	if err != nil {
		// No partial persistence: the user message is dropped with the
		// failed turn so no orphan ever reaches the store.
		log.Error().Err(err).Str("sessionID", session.ID).Msg("ProcessTurn: backend failed, turn discarded")
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	updated = append(updated, model.Message{Role: model.RoleAssistant, Content: reply})
	newTurnCount := session.TurnCount + 1

	err = s.sessionRepo.UpdateFields(session.ID, map[string]interface{}{
		"messages":   updated,
		"turn_count": newTurnCount,
		"updated_at": time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("ProcessTurn: failed to persist turn")
		return nil, fmt.Errorf("failed to persist turn: %w", err)
	}

	// The persisted status stays active until evaluation runs; only the
	// response signals completion.
	status := model.SessionStatusActive
	if newTurnCount >= s.cfg.Chat.MaxTurns {
		status = model.SessionStatusCompleted
	}
	return &dto.TurnResponse{
		SessionID: session.ID,
		Reply:     reply,
		Turn:      newTurnCount,
		Status:    status,
	}, nil
}

func (s *turnService) bumpPlayCount(scenarioID string) {
	if err := s.scenarioRepo.IncrementPlayCount(scenarioID); err != nil {
		log.Warn().Err(err).Str("scenarioID", scenarioID).Msg("ProcessTurn: failed to bump play count")
	}
}
