package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Kind string

const (
	KindTimedChallenge Kind = "timed-challenge"
	KindStorySelection Kind = "story-selection"
	KindMultipleChoice Kind = "multiple-choice"
	KindCustom         Kind = "custom"
)

func (k Kind) Valid() bool {
	switch k {
	case KindTimedChallenge, KindStorySelection, KindMultipleChoice, KindCustom:
		return true
	}
	return false
}

// Phase is one stage of the game sequence. Only multiple-choice phases carry
// Questions; the other kinds carry an opaque Content payload instead.
type Phase struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Kind        Kind            `json:"type"`
	TimeLimit   int             `json:"timeLimit,omitempty"`
	Questions   []Question      `json:"questions,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
	IsActive    bool            `json:"isActive"`
	Order       int             `json:"order"`
}

// NewPhase is everything a caller supplies when adding a phase; id and
// order are assigned by the catalog.
type NewPhase struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Kind        Kind            `json:"type"`
	TimeLimit   int             `json:"timeLimit,omitempty"`
	Questions   []NewQuestion   `json:"questions,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
	IsActive    bool            `json:"isActive"`
}

// PhaseUpdate is a partial update. Kind, id and order cannot be changed.
type PhaseUpdate struct {
	Title       Field[string]          `json:"title"`
	Description Field[string]          `json:"description"`
	TimeLimit   Field[int]             `json:"timeLimit"`
	Content     Field[json.RawMessage] `json:"content"`
	IsActive    Field[bool]            `json:"isActive"`
}

func (p Phase) clone() Phase {
	if p.Questions != nil {
		qs := make([]Question, len(p.Questions))
		for i, q := range p.Questions {
			qs[i] = q.clone()
		}
		p.Questions = qs
	}
	if p.Content != nil {
		p.Content = append(json.RawMessage(nil), p.Content...)
	}
	return p
}

// normalize shapes p as the tagged union its kind calls for.
func (p *Phase) normalize() error {
	if p.TimeLimit < 0 {
		return fmt.Errorf("%w: time limit must not be negative", ErrInvalid)
	}
	if p.Kind != KindTimedChallenge {
		p.TimeLimit = 0
	}

	if p.Kind == KindMultipleChoice {
		p.Content = nil
		if p.Questions == nil {
			p.Questions = []Question{}
		}
		return nil
	}
	p.Questions = nil

	content, err := compactContent(p.Content)
	if err != nil {
		return err
	}
	p.Content = content
	return nil
}

func compactContent(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, fmt.Errorf("%w: content is not valid JSON", ErrInvalid)
	}
	return json.RawMessage(buf.Bytes()), nil
}
