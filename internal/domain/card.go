package domain

import "errors"

// Card-specific validation errors
var (
	// ErrCardQuestionEmpty is returned when a card has no question text.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card has no answer text.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")
)

// Card represents a single flashcard definition shared by all users.
// The question text is the card's identity: the catalog rejects a second
// card with the same question. Hint, explanation and media references are
// optional presentation data.
type Card struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Hint        string `json:"hint,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	ImageRef    string `json:"image,omitempty"`
	AudioRef    string `json:"audio,omitempty"`
}

// Validate checks that the card carries the two required fields.
// Cards missing question or answer are not importable.
func (c *Card) Validate() error {
	if c.Question == "" {
		return ErrCardQuestionEmpty
	}
	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}
	return nil
}
