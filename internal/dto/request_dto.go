package dto

// TurnRequest drives both session creation and continuation. A request with
// no SessionID and a ScenarioID creates; a request with a SessionID continues.
type TurnRequest struct {
	SessionID      string `json:"sessionId"`
	ScenarioID     string `json:"scenarioId"`
	Message        string `json:"message" binding:"required"`
	IsInitializing bool   `json:"isInitializing"`
	InitialMessage string `json:"initialMessage"`
}

type EvaluateRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// GenerateScenarioRequest asks the backend for a fresh practice scenario.
// Difficulty is the client-facing string form ("beginner", "intermediate",
// "advanced").
type GenerateScenarioRequest struct {
	Skill      string `json:"skill"`
	Difficulty string `json:"difficulty"`
	Domain     string `json:"domain"`
}
