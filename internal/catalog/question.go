package catalog

import "fmt"

type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type NewQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

type QuestionUpdate struct {
	Text          Field[string]   `json:"text"`
	Options       Field[[]string] `json:"options"`
	CorrectAnswer Field[int]      `json:"correctAnswer"`
	Explanation   Field[string]   `json:"explanation"`
}

func (q Question) clone() Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

func (q Question) validate() error {
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: question needs at least one option", ErrInvalid)
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%w: correct answer %d out of range for %d options",
			ErrInvalid, q.CorrectAnswer, len(q.Options))
	}
	return nil
}
