package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a session transcript.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessageList is stored as a single jsonb column on the session row.
type MessageList []Message

func (m MessageList) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(MessageList{})
	}
	return json.Marshal(m)
}

func (m *MessageList) Scan(value interface{}) error {
	if value == nil {
		*m = MessageList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for MessageList", value)
	}
}

// WithoutSystem returns the transcript with system entries stripped, the
// only view that may ever reach a client.
func (m MessageList) WithoutSystem() MessageList {
	out := make(MessageList, 0, len(m))
	for _, msg := range m {
		if msg.Role == RoleUser || msg.Role == RoleAssistant {
			out = append(out, msg)
		}
	}
	return out
}

// Tail returns at most n of the trailing non-system messages, used to bound
// the context window sent to the generative backend.
func (m MessageList) Tail(n int) MessageList {
	filtered := m.WithoutSystem()
	if n <= 0 || len(filtered) <= n {
		return filtered
	}
	return filtered[len(filtered)-n:]
}
