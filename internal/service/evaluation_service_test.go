package service

import (
	"context"
	"errors"
	"testing"

	"github.com/minhanle/eqpractice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluableSession(sc *model.Scenario) *model.Session {
	return seedSession(sc, 3, strPtr("user-1"))
}

func TestEvaluateHappyPath(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	sessions := newFakeSessionRepo(session)
	llm := &fakeLLM{completeReply: `{
		"objective_achievement_rate": 72,
		"overall_score": 81,
		"detailed_scores": {"Empathy": 85, "De-escalation": 78},
		"feedback": "You acknowledged the customer's frustration early and stayed calm.",
		"improvement_suggestions": ["Name the emotion you observe before proposing a fix"],
		"strengths": ["Calm tone under pressure"],
		"areas_for_improvement": ["Committing to a concrete remedy sooner"]
	}`}
	svc := NewEvaluationService(sessions, llm, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.False(t, outcome.Degraded)
	assert.Equal(t, 81, outcome.Result.OverallScore)
	assert.Equal(t, 72, outcome.Result.ObjectiveAchievementRate)
	assert.Equal(t, 85, outcome.Result.DetailedScores["Empathy"])
	assert.Contains(t, outcome.Result.Feedback, "frustration")

	// The scored fields are written back and the session flips to completed.
	require.Len(t, sessions.updates, 1)
	fields := sessions.updates[0]
	assert.Equal(t, model.SessionStatusCompleted, fields["status"])
	assert.Equal(t, 81, fields["overall_score"])
	assert.Equal(t, 72, fields["objective_achievement_rate"])
	assert.NotNil(t, fields["evaluated_at"])

	assert.True(t, llm.lastOpts.JSONResponse)
}

func TestEvaluatePromptCarriesTranscriptAndRubric(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	llm := &fakeLLM{completeReply: `{"overall_score": 70}`}
	svc := NewEvaluationService(newFakeSessionRepo(session), llm, testConfig())

	svc.Evaluate(context.Background(), session.ID)

	prompt := llm.lastCompletePrompt
	assert.Contains(t, prompt, sc.Objective)
	assert.Contains(t, prompt, "Linh:")
	assert.Contains(t, prompt, "user 1")
	assert.Contains(t, prompt, "Empathy")
	assert.Contains(t, prompt, "De-escalation")
	assert.NotContains(t, prompt, "system prompt")
}

func TestEvaluateMissingSessionFallsBack(t *testing.T) {
	svc := NewEvaluationService(newFakeSessionRepo(), &fakeLLM{}, testConfig())

	outcome := svc.Evaluate(context.Background(), "missing")

	assert.True(t, outcome.Degraded)
	assert.Equal(t, "session not found", outcome.Reason)
	assert.Equal(t, 65, outcome.Result.OverallScore)
	assert.Equal(t, 60, outcome.Result.ObjectiveAchievementRate)
	// Default detailed scores are keyed by the generic rubric.
	assert.Len(t, outcome.Result.DetailedScores, 4)
	for _, score := range outcome.Result.DetailedScores {
		assert.Equal(t, 65, score)
	}
}

func TestEvaluateBackendErrorFallsBack(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	sessions := newFakeSessionRepo(session)
	svc := NewEvaluationService(sessions, &fakeLLM{completeErr: errors.New("503")}, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.True(t, outcome.Degraded)
	assert.Equal(t, "backend call failed or timed out", outcome.Reason)
	assert.Equal(t, 65, outcome.Result.OverallScore)
	// The fallback mirrors the scenario's own rubric criteria.
	assert.Equal(t, 65, outcome.Result.DetailedScores["Empathy"])
	assert.Equal(t, 65, outcome.Result.DetailedScores["De-escalation"])
	// Nothing is persisted for a degraded evaluation.
	assert.Empty(t, sessions.updates)
}

func TestEvaluateTimeoutFallsBack(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	llm := &fakeLLM{
		completeFn: func(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	cfg := testConfig()
	cfg.Chat.EvalTimeoutSecs = 0 // deadline expires immediately
	svc := NewEvaluationService(newFakeSessionRepo(session), llm, cfg)

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.True(t, outcome.Degraded)
	assert.Equal(t, "backend call failed or timed out", outcome.Reason)
}

func TestEvaluateUnparseableResponseFallsBack(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	llm := &fakeLLM{completeReply: "I am unable to evaluate this conversation."}
	svc := NewEvaluationService(newFakeSessionRepo(session), llm, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.True(t, outcome.Degraded)
	assert.Equal(t, "evaluation response unparseable", outcome.Reason)
	assert.Equal(t, 65, outcome.Result.OverallScore)
}

func TestEvaluateRecoversFencedResponse(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	llm := &fakeLLM{completeReply: "Here is the evaluation you asked for:\n```json\n" +
		`{"overall_score": 90, "objective_achievement_rate": 88, "feedback": "Strong work."}` +
		"\n```\nLet me know if you need anything else."}
	svc := NewEvaluationService(newFakeSessionRepo(session), llm, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.False(t, outcome.Degraded)
	assert.Equal(t, 90, outcome.Result.OverallScore)
	assert.Equal(t, 88, outcome.Result.ObjectiveAchievementRate)
}

func TestEvaluateRepairsMissingCommas(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	llm := &fakeLLM{completeReply: "{\n\"overall_score\": 77\n\"feedback\": \"decent\"\n}"}
	svc := NewEvaluationService(newFakeSessionRepo(session), llm, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.False(t, outcome.Degraded)
	assert.Equal(t, 77, outcome.Result.OverallScore)
	assert.Equal(t, "decent", outcome.Result.Feedback)
}

func TestEvaluateFillsMissingFieldsFromDefault(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	llm := &fakeLLM{completeReply: `{"overall_score": 95}`}
	svc := NewEvaluationService(newFakeSessionRepo(session), llm, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.False(t, outcome.Degraded)
	assert.Equal(t, 95, outcome.Result.OverallScore)
	assert.Equal(t, 60, outcome.Result.ObjectiveAchievementRate)
	assert.NotEmpty(t, outcome.Result.Feedback)
	assert.Len(t, outcome.Result.ImprovementSuggestions, 3)
	assert.NotEmpty(t, outcome.Result.Strengths)
	assert.Equal(t, 65, outcome.Result.DetailedScores["Empathy"])
}

func TestEvaluateMissingOverallScoreIsUnparseable(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	llm := &fakeLLM{completeReply: `{"feedback": "good job"}`}
	svc := NewEvaluationService(newFakeSessionRepo(session), llm, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.True(t, outcome.Degraded)
	assert.Equal(t, "evaluation response unparseable", outcome.Reason)
}

func TestEvaluateClampsScores(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	llm := &fakeLLM{completeReply: `{
		"overall_score": 87.6,
		"objective_achievement_rate": 140,
		"detailed_scores": {"Empathy": -12}
	}`}
	svc := NewEvaluationService(newFakeSessionRepo(session), llm, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.False(t, outcome.Degraded)
	assert.Equal(t, 88, outcome.Result.OverallScore)
	assert.Equal(t, 100, outcome.Result.ObjectiveAchievementRate)
	assert.Equal(t, 0, outcome.Result.DetailedScores["Empathy"])
}

func TestEvaluatePersistFailureStillReturnsResult(t *testing.T) {
	sc := testScenario()
	session := evaluableSession(sc)
	sessions := newFakeSessionRepo(session)
	sessions.updateErr = errors.New("connection reset")
	llm := &fakeLLM{completeReply: `{"overall_score": 82}`}
	svc := NewEvaluationService(sessions, llm, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	assert.False(t, outcome.Degraded)
	assert.Equal(t, 82, outcome.Result.OverallScore)
}

func TestEvaluateEmptyRubricUsesGeneric(t *testing.T) {
	sc := testScenario()
	sc.Rubric = nil
	session := evaluableSession(sc)
	llm := &fakeLLM{completeReply: `{"overall_score": 70}`}
	svc := NewEvaluationService(newFakeSessionRepo(session), llm, testConfig())

	outcome := svc.Evaluate(context.Background(), session.ID)

	require.False(t, outcome.Degraded)
	assert.Contains(t, llm.lastCompletePrompt, "Empathy and perspective taking")
	// Missing detailed_scores fall back to generic criteria.
	assert.Len(t, outcome.Result.DetailedScores, 4)
}
