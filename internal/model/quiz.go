package model

import "fmt"

// Mode labels a quiz variant and identifies its session.
type Mode string

const (
	// ModeSingle quizzes the first stored word.
	ModeSingle Mode = "single-question"
	// ModeFive quizzes the first five stored words.
	ModeFive Mode = "five-question"
	// ModeFull quizzes every stored word.
	ModeFull Mode = "full-set"
)

// Modes lists the quiz variants in menu order.
var Modes = []Mode{ModeSingle, ModeFive, ModeFull}

// ParseMode validates a mode label.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MinWords is the number of stored words the mode needs before it can start.
func (m Mode) MinWords() int {
	if m == ModeFive {
		return 5
	}
	return 1
}

// Direction is which way a question translates.
type Direction string

const (
	// Forward asks for the meaning of a word.
	Forward Direction = "forward"
	// Reverse asks for the word that has a given meaning.
	Reverse Direction = "reverse"
)
