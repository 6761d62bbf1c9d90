package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Character describes the persona the generative backend must play.
type Character struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Personality string `json:"personality"`
	Avatar      string `json:"avatar,omitempty"`
	Background  string `json:"background,omitempty"`
	Challenge   string `json:"challenge,omitempty"`
}

func (c Character) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Character) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = Character{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported type %T for Character", value)
	}
}

// RubricItem is one weighted scoring criterion. Some generated scenarios use
// the key "criteria" instead of "criterion", so both are accepted.
type RubricItem struct {
	Criterion string  `json:"criterion"`
	Weight    float64 `json:"weight"`
}

func (r *RubricItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Criterion string  `json:"criterion"`
		Criteria  string  `json:"criteria"`
		Weight    float64 `json:"weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Criterion = raw.Criterion
	if r.Criterion == "" {
		r.Criterion = raw.Criteria
	}
	r.Weight = raw.Weight
	return nil
}

type Rubric []RubricItem

func (r Rubric) Value() (driver.Value, error) {
	if r == nil {
		return json.Marshal(Rubric{})
	}
	return json.Marshal(r)
}

func (r *Rubric) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*r = Rubric{}
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported type %T for Rubric", value)
	}
}

// Scenario is a reusable practice template. Immutable after creation except
// the usage counters.
type Scenario struct {
	ID                string         `gorm:"primarykey" json:"id"`
	Title             string         `json:"title" gorm:"not null"`
	Domain            string         `json:"domain" gorm:"not null;index"` // "workplace", "social", "dating", "family", "travel", "networking"
	Difficulty        int            `json:"difficulty" gorm:"not null"`   // 1-3
	Objective         string         `json:"objective" gorm:"type:text"`
	Character         Character      `json:"character" gorm:"type:jsonb"`
	ScenarioContext   string         `json:"scenario_context" gorm:"type:text"`
	SystemPrompt      string         `json:"system_prompt" gorm:"type:text"`
	Rubric            Rubric         `json:"rubric" gorm:"type:jsonb"`
	Language          string         `json:"language,omitempty"`
	PlayCount         int            `json:"play_count"`
	UsefulnessAverage float64        `json:"usefulness_average"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
