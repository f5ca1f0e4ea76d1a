package model

import (
	"errors"
	"testing"
)

func TestValidationError_Unwrap(t *testing.T) {
	err := NewValidationError("word", "required")
	if got := err.Error(); got != "validation: word: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestNewWordPair(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		meaning string
		want    WordPair
		wantErr bool
	}{
		{"plain", "apple", "リンゴ", WordPair{"apple", "リンゴ"}, false},
		{"trimmed", "  apple ", "\tリンゴ\n", WordPair{"apple", "リンゴ"}, false},
		{"empty word", "", "リンゴ", WordPair{}, true},
		{"blank meaning", "apple", "   ", WordPair{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewWordPair(tt.word, tt.meaning)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewWordPair: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseBatch(t *testing.T) {
	pairs, err := ParseBatch("apple, banana", "リンゴ,バナナ ")
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if len(pairs) != 2 || pairs[1] != (WordPair{"banana", "バナナ"}) {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}

	if _, err := ParseBatch("apple,banana", "リンゴ"); !errors.Is(err, ErrValidation) {
		t.Errorf("mismatched counts: expected validation error, got %v", err)
	}
	if _, err := ParseBatch("apple,", "リンゴ,バナナ"); !errors.Is(err, ErrValidation) {
		t.Errorf("empty item: expected validation error, got %v", err)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{0, 1, 0},
		{1, 1, 100},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 7, 42.9},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Percent(tt.correct, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(nil); got != (ResultSummary{}) {
		t.Errorf("empty summary = %+v", got)
	}
	got := Summarize([]ResultRecord{{Percent: 100}, {Percent: 50}, {Percent: 33.3}})
	if got.Count != 3 || got.AveragePercent != 61.1 {
		t.Errorf("unexpected summary %+v", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("ten-question"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
	if ModeFive.MinWords() != 5 || ModeFull.MinWords() != 1 {
		t.Error("unexpected MinWords")
	}
}
