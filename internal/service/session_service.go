package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/minhanle/eqpractice/internal/dto"
	"github.com/minhanle/eqpractice/internal/model"
	"github.com/minhanle/eqpractice/internal/repository"
	"github.com/rs/zerolog/log"
)

// SessionService serves read-only session views. Every view strips system
// messages before leaving the service.
type SessionService interface {
	GetSession(sessionID string, userID *string) (*dto.SessionResponse, error)
	ListSessions(userID string, page, limit int) (*dto.SessionListResponse, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
}

func NewSessionService(sessionRepo repository.SessionRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo}
}

func (s *sessionService) GetSession(sessionID string, userID *string) (*dto.SessionResponse, error) {
	session, err := s.sessionRepo.FindByIDWithScenario(sessionID)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("GetSession: lookup failed")
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if userID != nil && session.UserID != nil && *session.UserID != *userID {
		return nil, ErrForbidden
	}
	return sessionToDTO(session)
}

func (s *sessionService) ListSessions(userID string, page, limit int) (*dto.SessionListResponse, error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = 10
	}
	offset := page * limit

	total, err := s.sessionRepo.CountByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("ListSessions: count failed")
		return nil, fmt.Errorf("error counting sessions: %w", err)
	}

	sessions, err := s.sessionRepo.FindAllByUser(userID, offset, limit)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("ListSessions: query failed")
		return nil, fmt.Errorf("error fetching sessions: %w", err)
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		resp, err := sessionToDTO(&sessions[i])
		if err != nil {
			log.Error().Err(err).Str("sessionID", sessions[i].ID).Msg("ListSessions: failed to map session, skipping")
			continue
		}
		out = append(out, *resp)
	}

	return &dto.SessionListResponse{
		Sessions: out,
		Total:    total,
		Page:     page,
		Limit:    limit,
		HasMore:  len(sessions) == limit && int64(offset+limit) < total,
		Loaded:   len(out),
	}, nil
}

func sessionToDTO(session *model.Session) (*dto.SessionResponse, error) {
	var resp dto.SessionResponse
	if err := copier.Copy(&resp, session); err != nil {
		log.Error().Err(err).Msg("Failed to copy Session model to SessionResponse")
		return nil, fmt.Errorf("error preparing session response: %w", err)
	}

	// copier maps the full transcript; replace it with the client view.
	visible := session.Messages.WithoutSystem()
	resp.Messages = make([]dto.MessageDTO, len(visible))
	for i, msg := range visible {
		resp.Messages[i] = dto.MessageDTO{Role: msg.Role, Content: msg.Content}
	}

	if session.Scenario.ID != "" {
		resp.ScenarioTitle = session.Scenario.Title
		resp.ScenarioDomain = session.Scenario.Domain
		resp.Character = &dto.CharacterDTO{}
		copier.Copy(resp.Character, &session.Scenario.Character)
	}
	return &resp, nil
}
