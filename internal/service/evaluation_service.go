package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/minhanle/eqpractice/config"
	"github.com/minhanle/eqpractice/internal/dto"
	"github.com/minhanle/eqpractice/internal/model"
	"github.com/minhanle/eqpractice/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	evalTemperature = 0.3
	evalMaxTokens   = 1000
)

// EvaluationOutcome tags a result as genuinely model-produced (Ok) or as
// the deterministic fallback (Degraded with a reason). The HTTP boundary
// returns the result either way; the tag exists for logging and tests.
type EvaluationOutcome struct {
	Result   dto.EvaluationResult
	Degraded bool
	Reason   string
}

// EvaluationService converts a completed transcript into a structured
// score. Evaluate never fails outward: every failure path yields a
// best-effort default so the practice always ends with a visible result.
type EvaluationService interface {
	Evaluate(ctx context.Context, sessionID string) *EvaluationOutcome
}

type evaluationService struct {
	sessionRepo repository.SessionRepository
	llm         LLMService
	cfg         *config.Config
}

func NewEvaluationService(sessionRepo repository.SessionRepository, llm LLMService, cfg *config.Config) EvaluationService {
	return &evaluationService{sessionRepo: sessionRepo, llm: llm, cfg: cfg}
}

// genericRubric substitutes for a scenario whose rubric is unavailable.
func genericRubric() model.Rubric {
	return model.Rubric{
		{Criterion: "Empathy and perspective taking", Weight: 0.25},
		{Criterion: "Clarity of communication", Weight: 0.25},
		{Criterion: "Emotional self-regulation", Weight: 0.25},
		{Criterion: "Goal orientation", Weight: 0.25},
	}
}

// defaultEvaluation is the deterministic fallback returned on any failure.
func defaultEvaluation(rubric model.Rubric) dto.EvaluationResult {
	detailed := make(map[string]int, len(rubric))
	for _, item := range rubric {
		detailed[item.Criterion] = 65
	}
	return dto.EvaluationResult{
		OverallScore:             65,
		ObjectiveAchievementRate: 60,
		DetailedScores:           detailed,
		Feedback: "You completed the practice conversation. You showed solid basic " +
			"communication skills; keep practicing to sharpen your emotional awareness further.",
		ImprovementSuggestions: []string{
			"Try to see the situation from the other person's point of view more often",
			"Use open questions to invite the other person to share their thinking",
			"Listen actively and acknowledge the other person's emotional needs",
		},
		Strengths: []string{
			"You carried the conversation through to the end",
			"You kept an even, respectful tone",
		},
		AreasForImprovement: []string{
			"Responding to emotional cues more directly",
			"Steering the conversation toward the stated goal",
		},
	}
}

func (s *evaluationService) degraded(rubric model.Rubric, reason string, err error) *EvaluationOutcome {
	log.Warn().Err(err).Str("reason", reason).Msg("Evaluate: falling back to default evaluation")
	return &EvaluationOutcome{Result: defaultEvaluation(rubric), Degraded: true, Reason: reason}
}

func (s *evaluationService) Evaluate(ctx context.Context, sessionID string) *EvaluationOutcome {
	session, err := s.sessionRepo.FindByIDWithScenario(sessionID)
	if err != nil {
		return s.degraded(genericRubric(), "session not found", err)
	}

	scenario := session.Scenario
	rubric := scenario.Rubric
	if len(rubric) == 0 {
		rubric = genericRubric()
	}
	character := scenario.Character
	if character.Name == "" {
		character = fallbackCharacter(scenario.Domain)
	}

	prompt := buildEvaluationPrompt(&scenario, character, rubric, session.Messages)

	timeout := time.Duration(s.cfg.Chat.EvalTimeoutSecs) * time.Second
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.llm.Complete(callCtx, prompt, GenerateOptions{
		Model:        s.cfg.Chat.EvalModel,
		Temperature:  evalTemperature,
		MaxTokens:    evalMaxTokens,
		JSONResponse: true,
	})
	if err != nil {
		return s.degraded(rubric, "backend call failed or timed out", err)
	}

	result, err := parseEvaluation(raw, rubric)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Evaluate: unrecoverable evaluation payload")
		return s.degraded(rubric, "evaluation response unparseable", err)
	}

	s.persistEvaluation(session.ID, result)

	return &EvaluationOutcome{Result: result}
}

// persistEvaluation writes the scored fields and flips the session to
// completed. A persistence error is logged but never withheld from the
// caller; the evaluation itself already succeeded.
func (s *evaluationService) persistEvaluation(sessionID string, result dto.EvaluationResult) {
	now := time.Now()
	fields := map[string]interface{}{
		"status":                     model.SessionStatusCompleted,
		"overall_score":              result.OverallScore,
		"objective_achievement_rate": result.ObjectiveAchievementRate,
		"feedback":                   result.Feedback,
		"improvement_suggestions":    model.StringList(result.ImprovementSuggestions),
		"evaluated_at":               now,
		"updated_at":                 now,
	}
	if len(result.DetailedScores) > 0 {
		fields["detailed_scores"] = model.ScoreMap(result.DetailedScores)
	}
	if err := s.sessionRepo.UpdateFields(sessionID, fields); err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("Evaluate: failed to persist evaluation, returning result anyway")
	}
}

func buildEvaluationPrompt(scenario *model.Scenario, character model.Character, rubric model.Rubric, messages model.MessageList) string {
	var b strings.Builder
	b.WriteString("You are a professional assessor of emotional intelligence and communication skills. ")
	b.WriteString("Evaluate the user's performance in the conversation below.\n\n")

	fmt.Fprintf(&b, "Conversation objective: %s\n", scenario.Objective)
	fmt.Fprintf(&b, "Character: %s - %s\n", character.Name, character.Role)
	fmt.Fprintf(&b, "Character challenge: %s\n\n", character.Challenge)

	b.WriteString("Transcript:\n")
	for _, msg := range messages.WithoutSystem() {
		speaker := "user"
		if msg.Role == model.RoleAssistant {
			speaker = character.Name
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Content)
	}

	b.WriteString("\nScoring rubric:\n")
	for i, item := range rubric {
		fmt.Fprintf(&b, "%d. %s (weight: %g)\n", i+1, item.Criterion, item.Weight)
	}

	b.WriteString(`
Return ONLY a JSON object with exactly this structure:
{
  "objective_achievement_rate": <0-100>,
  "overall_score": <0-100>,
  "detailed_scores": {
    "<criterion 1>": <0-100>,
    "<criterion 2>": <0-100>
  },
  "feedback": "overall assessment of the performance",
  "improvement_suggestions": ["suggestion 1", "suggestion 2"],
  "strengths": ["strength 1", "strength 2"],
  "areas_for_improvement": ["area 1", "area 2"]
}

Requirements: score objectively from the user's actual performance, focus on
emotional intelligence technique, weigh how far the objective was achieved,
and give concrete actionable suggestions. Return only the JSON, no other text.`)

	return b.String()
}

// rawEvaluation tolerates the numeric sloppiness of model output: scores
// may arrive as floats, and any field may be missing.
type rawEvaluation struct {
	OverallScore             *float64           `json:"overall_score"`
	ObjectiveAchievementRate *float64           `json:"objective_achievement_rate"`
	DetailedScores           map[string]float64 `json:"detailed_scores"`
	Feedback                 string             `json:"feedback"`
	ImprovementSuggestions   []string           `json:"improvement_suggestions"`
	Strengths                []string           `json:"strengths"`
	AreasForImprovement      []string           `json:"areas_for_improvement"`
}

func parseEvaluation(raw string, rubric model.Rubric) (dto.EvaluationResult, error) {
	var zero dto.EvaluationResult

	data, err := extractJSONObject(raw)
	if err != nil {
		return zero, err
	}

	var parsed rawEvaluation
	if err := json.Unmarshal(data, &parsed); err != nil {
		return zero, fmt.Errorf("evaluation JSON has wrong shape: %w", err)
	}
	if parsed.OverallScore == nil {
		return zero, fmt.Errorf("evaluation JSON is missing overall_score")
	}

	fallback := defaultEvaluation(rubric)

	result := dto.EvaluationResult{
		OverallScore:           clampScore(*parsed.OverallScore),
		Feedback:               parsed.Feedback,
		ImprovementSuggestions: parsed.ImprovementSuggestions,
		Strengths:              parsed.Strengths,
		AreasForImprovement:    parsed.AreasForImprovement,
	}

	// objective_achievement_rate is independent of overall_score and may
	// legitimately differ; it only falls back when absent.
	if parsed.ObjectiveAchievementRate != nil {
		result.ObjectiveAchievementRate = clampScore(*parsed.ObjectiveAchievementRate)
	} else {
		result.ObjectiveAchievementRate = fallback.ObjectiveAchievementRate
	}

	if len(parsed.DetailedScores) > 0 {
		result.DetailedScores = make(map[string]int, len(parsed.DetailedScores))
		for criterion, score := range parsed.DetailedScores {
			result.DetailedScores[criterion] = clampScore(score)
		}
	} else {
		result.DetailedScores = fallback.DetailedScores
	}

	if strings.TrimSpace(result.Feedback) == "" {
		result.Feedback = fallback.Feedback
	}
	if len(result.ImprovementSuggestions) == 0 {
		result.ImprovementSuggestions = fallback.ImprovementSuggestions
	}
	if len(result.Strengths) == 0 {
		result.Strengths = fallback.Strengths
	}
	if len(result.AreasForImprovement) == 0 {
		result.AreasForImprovement = fallback.AreasForImprovement
	}

	return result, nil
}

// clampScore rounds to an integer and pins to the 0-100 scale.
func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
