package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// MessageDTO is one client-visible transcript entry. System entries are
// stripped before a transcript is copied into this shape.
type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnResponse is returned by the turn endpoint. Status flips to "completed"
// in the response as soon as the turn limit is reached, even though the
// persisted flip happens at evaluation time.
type TurnResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Turn      int    `json:"turn"`
	Status    string `json:"status"`
}

// EvaluationResult is the structured post-session score artifact. All
// numeric fields are 0-100 integers.
type EvaluationResult struct {
	OverallScore             int            `json:"overall_score"`
	ObjectiveAchievementRate int            `json:"objective_achievement_rate"`
	DetailedScores           map[string]int `json:"detailed_scores"`
	Feedback                 string         `json:"feedback"`
	ImprovementSuggestions   []string       `json:"improvement_suggestions"`
	Strengths                []string       `json:"strengths"`
	AreasForImprovement      []string       `json:"areas_for_improvement"`
}

type EvaluateResponse struct {
	Success    bool             `json:"success"`
	Evaluation EvaluationResult `json:"evaluation"`
}

type SessionResponse struct {
	ID                       string         `json:"id"`
	ScenarioID               string         `json:"scenario_id"`
	UserID                   *string        `json:"user_id,omitempty"`
	Messages                 []MessageDTO   `json:"messages"`
	TurnCount                int            `json:"turn_count"`
	Status                   string         `json:"status"`
	OverallScore             *int           `json:"overall_score,omitempty"`
	ObjectiveAchievementRate *int           `json:"objective_achievement_rate,omitempty"`
	DetailedScores           map[string]int `json:"detailed_scores,omitempty"`
	Feedback                 string         `json:"feedback,omitempty"`
	ImprovementSuggestions   []string       `json:"improvement_suggestions,omitempty"`
	EvaluatedAt              *time.Time     `json:"evaluated_at,omitempty"`
	CreatedAt                time.Time      `json:"created_at"`

	// Denormalized scenario fields for history listings.
	ScenarioTitle  string        `json:"scenario_title,omitempty"`
	ScenarioDomain string        `json:"scenario_domain,omitempty"`
	Character      *CharacterDTO `json:"character,omitempty"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	HasMore  bool              `json:"hasMore"`
	Loaded   int               `json:"loaded"`
}

type CharacterDTO struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Personality string `json:"personality"`
	Avatar      string `json:"avatar,omitempty"`
	Background  string `json:"background,omitempty"`
	Challenge   string `json:"challenge,omitempty"`
}

type RubricItemDTO struct {
	Criterion string  `json:"criterion"`
	Weight    float64 `json:"weight"`
}

type ScenarioResponse struct {
	ID              string          `json:"id"`
	ScenarioID      string          `json:"scenarioId,omitempty"` // alias kept for the play client
	Title           string          `json:"title"`
	Domain          string          `json:"domain"`
	Difficulty      int             `json:"difficulty"`
	Objective       string          `json:"objective"`
	Character       CharacterDTO    `json:"character"`
	ScenarioContext string          `json:"scenario_context"`
	SystemPrompt    string          `json:"system_prompt,omitempty"`
	Rubric          []RubricItemDTO `json:"rubric"`
	Language        string          `json:"language,omitempty"`
	PlayCount       int             `json:"play_count"`
	CreatedAt       time.Time       `json:"created_at"`
}

type InitialMessageResponse struct {
	Message string `json:"message"`
}
