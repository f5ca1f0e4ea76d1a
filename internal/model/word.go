package model

import (
	"strings"
	"time"
)

// WordEntry is a stored vocabulary item.
type WordEntry struct {
	ID        int64     `json:"id"`
	Word      string    `json:"word"`
	Meaning   string    `json:"meaning"`
	CreatedAt time.Time `json:"created_at"`
}

// WordPair is a validated word/meaning pair that has not been stored yet.
type WordPair struct {
	Word    string
	Meaning string
}

// NewWordPair trims both fields and rejects empty ones.
func NewWordPair(word, meaning string) (WordPair, error) {
	p := WordPair{Word: strings.TrimSpace(word), Meaning: strings.TrimSpace(meaning)}
	var errs []FieldError
	if p.Word == "" {
		errs = append(errs, FieldError{Field: "word", Message: "required"})
	}
	if p.Meaning == "" {
		errs = append(errs, FieldError{Field: "meaning", Message: "required"})
	}
	if len(errs) > 0 {
		return WordPair{}, &ValidationError{Errors: errs}
	}
	return p, nil
}

// ParseBatch splits comma-separated words and meanings into pairs, e.g.
// "apple,banana" and "リンゴ,バナナ". The counts must match and no item may be
// empty; on any problem no pairs are returned.
func ParseBatch(words, meanings string) ([]WordPair, error) {
	ws := strings.Split(words, ",")
	ms := strings.Split(meanings, ",")
	if len(ws) != len(ms) {
		return nil, NewValidationError("meaning", "number of words and meanings must match")
	}

	pairs := make([]WordPair, 0, len(ws))
	for i := range ws {
		p, err := NewWordPair(ws[i], ms[i])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
