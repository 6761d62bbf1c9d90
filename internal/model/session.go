package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

// ScoreMap maps a rubric criterion label to a 0-100 score.
type ScoreMap map[string]int

func (s ScoreMap) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *ScoreMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type %T for ScoreMap", value)
	}
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Session is one bounded practice conversation. messages[0] is always the
// system role-play instruction; it is replaced with a freshly built one on
// every turn, never accumulated.
type Session struct {
	ID         string      `gorm:"primarykey" json:"id"`
	ScenarioID string      `json:"scenario_id" gorm:"not null;index"`
	Scenario   Scenario    `json:"scenario,omitempty" gorm:"foreignKey:ScenarioID"`
	UserID     *string     `json:"user_id,omitempty" gorm:"index"` // nil for anonymous sessions
	Messages   MessageList `json:"messages" gorm:"type:jsonb"`
	TurnCount  int         `json:"turn_count"`
	Status     string      `json:"status" gorm:"default:'active';index"`

	// Populated by the evaluation pipeline once the turn limit is reached.
	OverallScore             *int       `json:"overall_score,omitempty"`
	ObjectiveAchievementRate *int       `json:"objective_achievement_rate,omitempty"`
	DetailedScores           ScoreMap   `json:"detailed_scores,omitempty" gorm:"type:jsonb"`
	Feedback                 string     `json:"feedback,omitempty" gorm:"type:text"`
	ImprovementSuggestions   StringList `json:"improvement_suggestions,omitempty" gorm:"type:jsonb"`
	EvaluatedAt              *time.Time `json:"evaluated_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
