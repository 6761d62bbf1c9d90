package service

import (
	"context"

	"github.com/minhanle/eqpractice/config"
	"github.com/minhanle/eqpractice/internal/model"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repositories and the generative backend.
// They record enough call detail for tests to assert on what was persisted
// and what was sent to the backend.

type fakeScenarioRepo struct {
	scenarios  map[string]*model.Scenario
	createErr  error
	playCounts map[string]int
}

func newFakeScenarioRepo(scenarios ...*model.Scenario) *fakeScenarioRepo {
	r := &fakeScenarioRepo{
		scenarios:  make(map[string]*model.Scenario),
		playCounts: make(map[string]int),
	}
	for _, sc := range scenarios {
		r.scenarios[sc.ID] = sc
	}
	return r
}

func (r *fakeScenarioRepo) Create(scenario *model.Scenario) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.scenarios[scenario.ID] = scenario
	return nil
}

func (r *fakeScenarioRepo) FindByID(id string) (*model.Scenario, error) {
	sc, ok := r.scenarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sc
	return &cp, nil
}

func (r *fakeScenarioRepo) IncrementPlayCount(id string) error {
	r.playCounts[id]++
	return nil
}

type fakeSessionRepo struct {
	sessions  map[string]*model.Session
	order     []string
	createErr error
	updateErr error
	// every UpdateFields call, in order
	updates []map[string]interface{}
}

func newFakeSessionRepo(sessions ...*model.Session) *fakeSessionRepo {
	r := &fakeSessionRepo{sessions: make(map[string]*model.Session)}
	for _, s := range sessions {
		r.sessions[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r
}

func (r *fakeSessionRepo) Create(session *model.Session) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.sessions[session.ID] = session
	r.order = append(r.order, session.ID)
	return nil
}

func (r *fakeSessionRepo) Update(session *model.Session) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) UpdateFields(id string, fields map[string]interface{}) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, fields)
	session, ok := r.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["messages"].(model.MessageList); ok {
		session.Messages = v
	}
	if v, ok := fields["turn_count"].(int); ok {
		session.TurnCount = v
	}
	if v, ok := fields["status"].(string); ok {
		session.Status = v
	}
	return nil
}

func (r *fakeSessionRepo) FindByID(id string) (*model.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *session
	return &cp, nil
}

func (r *fakeSessionRepo) FindByIDWithScenario(id string) (*model.Session, error) {
	return r.FindByID(id)
}

func (r *fakeSessionRepo) FindAllByUser(userID string, offset, limit int) ([]model.Session, error) {
	var matched []model.Session
	for _, id := range r.order {
		s := r.sessions[id]
		if s.UserID != nil && *s.UserID == userID {
			matched = append(matched, *s)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *fakeSessionRepo) CountByUser(userID string) (int64, error) {
	var count int64
	for _, s := range r.sessions {
		if s.UserID != nil && *s.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeLLM struct {
	chatReply string
	chatErr   error

	completeReply string
	completeErr   error
	// completeFn, when set, takes precedence over completeReply/completeErr
	completeFn func(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	chatCalls     int
	completeCalls int

	lastSystem         string
	lastHistory        []model.Message
	lastCompletePrompt string
	lastOpts           GenerateOptions
}

func (l *fakeLLM) Chat(ctx context.Context, systemInstruction string, history []model.Message, opts GenerateOptions) (string, error) {
	l.chatCalls++
	l.lastSystem = systemInstruction
	l.lastHistory = history
	l.lastOpts = opts
	if l.chatErr != nil {
		return "", l.chatErr
	}
	return l.chatReply, nil
}

func (l *fakeLLM) Complete(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	l.completeCalls++
	l.lastCompletePrompt = prompt
	l.lastOpts = opts
	if l.completeFn != nil {
		return l.completeFn(ctx, prompt, opts)
	}
	if l.completeErr != nil {
		return "", l.completeErr
	}
	return l.completeReply, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Chat: config.Chat{
			Model:           "gemini-1.5-flash",
			EvalModel:       "gemini-1.5-flash",
			MaxTurns:        3,
			HistoryWindow:   6,
			ReplyLanguage:   "English",
			EvalTimeoutSecs: 5,
		},
	}
}

func testScenario() *model.Scenario {
	return &model.Scenario{
		ID:         "scn_late_order",
		Title:      "Calming an angry customer",
		Domain:     "workplace",
		Difficulty: 2,
		Objective:  "Defuse the customer's anger and keep their business",
		Character: model.Character{
			Name:        "Linh",
			Role:        "upset customer",
			Personality: "impatient and direct",
			Challenge:   "quick to anger, hard to appease",
		},
		ScenarioContext: "The customer's order arrived two weeks late.",
		Rubric: model.Rubric{
			{Criterion: "Empathy", Weight: 0.5},
			{Criterion: "De-escalation", Weight: 0.5},
		},
		Language: "English",
	}
}

func strPtr(s string) *string { return &s }
