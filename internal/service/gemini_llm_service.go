package service

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/minhanle/eqpractice/config"
	"github.com/minhanle/eqpractice/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GenerateOptions carries the per-call knobs of a backend request.
type GenerateOptions struct {
	Model        string
	Temperature  float32
	MaxTokens    int32
	JSONResponse bool
}

// LLMService is the generative text backend. Chat runs a role-locked
// conversation turn; Complete runs a single free-standing prompt (scenario
// generation, evaluation).
type LLMService interface {
	Chat(ctx context.Context, systemInstruction string, history []model.Message, opts GenerateOptions) (string, error)
	Complete(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

type geminiLLMService struct {
	client *genai.Client
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (LLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. LLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client, cfg: cfg}, nil
}

// generativeModel builds a fresh model handle per call; the handle carries
// mutable generation config, so it must not be shared across requests.
func (s *geminiLLMService) generativeModel(opts GenerateOptions) *genai.GenerativeModel {
	name := opts.Model
	if name == "" {
		name = s.cfg.Chat.Model
	}
	m := s.client.GenerativeModel(name)
	if opts.Temperature > 0 {
		m.SetTemperature(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		m.SetMaxOutputTokens(opts.MaxTokens)
	}
	if opts.JSONResponse {
		m.ResponseMIMEType = "application/json"
	}
	return m
}

func (s *geminiLLMService) Chat(ctx context.Context, systemInstruction string, history []model.Message, opts GenerateOptions) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}
	if len(history) == 0 {
		return "", fmt.Errorf("chat history is empty")
	}

	m := s.generativeModel(opts)
	if systemInstruction != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	}

	cs := m.StartChat()
	for _, msg := range history[:len(history)-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  geminiRole(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	last := history[len(history)-1]
	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during chat turn")
		return "", fmt.Errorf("gemini chat request: %w", err)
	}
	return textFromResponse(resp)
}

func (s *geminiLLMService) Complete(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	m := s.generativeModel(opts)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during completion")
		return "", fmt.Errorf("gemini completion request: %w", err)
	}
	return textFromResponse(resp)
}

func geminiRole(role string) string {
	if role == model.RoleAssistant {
		return "model"
	}
	return "user"
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}
	full := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			full += string(txt)
		}
	}
	if full == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return full, nil
}
