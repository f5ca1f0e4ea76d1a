package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/pavelanni/wordquiz/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addTestWord(t *testing.T, s *Store, word, meaning string) model.WordEntry {
	t.Helper()
	w, err := s.AddWord(word, meaning)
	if err != nil {
		t.Fatalf("addTestWord: %v", err)
	}
	return w
}

func TestWordCRUD(t *testing.T) {
	s := newTestStore(t)

	// Empty DB should return zero count and empty list.
	count, err := s.WordCount()
	if err != nil {
		t.Fatalf("WordCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 words, got %d", count)
	}
	list, err := s.ListWords()
	if err != nil {
		t.Fatalf("ListWords: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	apple := addTestWord(t, s, " apple ", "リンゴ")
	banana := addTestWord(t, s, "banana", "バナナ")
	if apple.ID == banana.ID {
		t.Fatalf("expected unique ids, got %d twice", apple.ID)
	}
	if apple.Word != "apple" {
		t.Errorf("expected trimmed word 'apple', got %q", apple.Word)
	}

	list, err = s.ListWords()
	if err != nil {
		t.Fatalf("ListWords: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 words, got %d", len(list))
	}
	if list[0].ID != apple.ID || list[0].Meaning != "リンゴ" || list[1].ID != banana.ID {
		t.Errorf("unexpected order or content: %+v", list)
	}

	// Successive reads are stable.
	again, _ := s.ListWords()
	for i := range list {
		if list[i].ID != again[i].ID {
			t.Fatalf("list order changed between calls")
		}
	}
}

func TestAddWordValidation(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name, word, meaning string
	}{
		{"empty word", "", "リンゴ"},
		{"blank meaning", "apple", "  "},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddWord(tt.word, tt.meaning)
			var verr *model.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
		})
	}

	count, _ := s.WordCount()
	if count != 0 {
		t.Errorf("expected nothing stored, got %d words", count)
	}
}

func TestAddWordsIsAllOrNothing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddWords([]model.WordPair{{Word: "apple", Meaning: "リンゴ"}, {Word: "banana", Meaning: ""}})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	count, _ := s.WordCount()
	if count != 0 {
		t.Fatalf("expected no words after rejected batch, got %d", count)
	}

	entries, err := s.AddWords([]model.WordPair{{Word: "apple", Meaning: "リンゴ"}, {Word: "apple", Meaning: "リンゴ"}})
	if err != nil {
		t.Fatalf("AddWords: %v", err)
	}
	if len(entries) != 2 || entries[0].ID == entries[1].ID {
		t.Errorf("duplicates should be stored as separate entries: %+v", entries)
	}
}

func TestDeleteWord(t *testing.T) {
	s := newTestStore(t)
	a := addTestWord(t, s, "apple", "リンゴ")
	b := addTestWord(t, s, "banana", "バナナ")
	c := addTestWord(t, s, "cherry", "さくらんぼ")

	if _, err := s.AppendResult(model.ModeFull, 2, 3); err != nil {
		t.Fatalf("AppendResult: %v", err)
	}

	if err := s.DeleteWord(b.ID); err != nil {
		t.Fatalf("DeleteWord: %v", err)
	}
	list, _ := s.ListWords()
	if len(list) != 2 {
		t.Fatalf("expected 2 words, got %d", len(list))
	}
	if list[0].ID != a.ID || list[1].ID != c.ID {
		t.Errorf("other entries should keep their ids, got %+v", list)
	}

	// Deleting again is a not-found error.
	if err := s.DeleteWord(b.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteWord(9999); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Results are unaffected.
	results, _ := s.RecentResults(0)
	if len(results) != 1 {
		t.Errorf("expected result history to survive deletion, got %d", len(results))
	}
}

func TestWordCount(t *testing.T) {
	s := newTestStore(t)

	apple := addTestWord(t, s, "apple", "リンゴ")
	addTestWord(t, s, "banana", "バナナ")
	addTestWord(t, s, "apple", "リンゴ")

	count, err := s.WordCount()
	if err != nil {
		t.Fatalf("WordCount: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 words including the duplicate, got %d", count)
	}

	if err := s.DeleteWord(apple.ID); err != nil {
		t.Fatalf("DeleteWord: %v", err)
	}
	count, err = s.WordCount()
	if err != nil {
		t.Fatalf("WordCount: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 words after delete, got %d", count)
	}
}

func TestAppendResult(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.AppendResult(model.ModeFive, 2, 3)
	if err != nil {
		t.Fatalf("AppendResult: %v", err)
	}
	if rec.Percent != 66.7 {
		t.Errorf("expected percent 66.7, got %v", rec.Percent)
	}
	if rec.PlayedAt.IsZero() {
		t.Error("expected played_at to be set")
	}

	tests := []struct {
		name           string
		correct, total int
	}{
		{"zero total", 0, 0},
		{"negative correct", -1, 3},
		{"correct above total", 4, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AppendResult(model.ModeFull, tt.correct, tt.total); !errors.Is(err, model.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	results, _ := s.RecentResults(0)
	if len(results) != 1 {
		t.Fatalf("expected only the valid result to be stored, got %d", len(results))
	}
	got := results[0]
	if got.Mode != model.ModeFive || got.Correct != 2 || got.Total != 3 || got.Percent != 66.7 {
		t.Errorf("unexpected stored result %+v", got)
	}
}

func TestAppendSessionResultOnce(t *testing.T) {
	s := newTestStore(t)

	first, err := s.AppendSessionResult("session-1", model.ModeSingle, 1, 1)
	if err != nil {
		t.Fatalf("AppendSessionResult: %v", err)
	}
	second, err := s.AppendSessionResult("session-1", model.ModeSingle, 0, 1)
	if err != nil {
		t.Fatalf("AppendSessionResult repeat: %v", err)
	}
	if second.ID != first.ID || second.Correct != 1 {
		t.Errorf("repeat should return the stored record, got %+v", second)
	}

	results, _ := s.RecentResults(0)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].SessionID != "session-1" {
		t.Errorf("expected session id to round-trip, got %q", results[0].SessionID)
	}
}

func TestRecentResultsLimitAndOrder(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 35; i++ {
		if _, err := s.AppendResult(model.ModeFull, i%4, 3+i%4); err != nil {
			t.Fatalf("AppendResult %d: %v", i, err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 30},
		{"explicit 30", 30, 30},
		{"small", 5, 5},
		{"more than stored", 100, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := s.RecentResults(tt.limit)
			if err != nil {
				t.Fatalf("RecentResults: %v", err)
			}
			if len(results) != tt.want {
				t.Fatalf("expected %d results, got %d", tt.want, len(results))
			}
			for i := 1; i < len(results); i++ {
				prev, cur := results[i-1], results[i]
				if cur.PlayedAt.After(prev.PlayedAt) || cur.ID > prev.ID {
					t.Fatalf("results not ordered most recent first at %d", i)
				}
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestStore(t)
	addTestWord(t, s, "apple", "リンゴ")
	s.AppendResult(model.ModeSingle, 1, 1)
	s.AppendResult(model.ModeSingle, 0, 1)

	snap, err := s.Snapshot(0)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Words) != 1 || len(snap.Results) != 2 {
		t.Fatalf("unexpected snapshot sizes: %d words, %d results", len(snap.Words), len(snap.Results))
	}
	if snap.Summary.Count != 2 || snap.Summary.AveragePercent != 50 {
		t.Errorf("unexpected summary %+v", snap.Summary)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	addTestWord(t, s, "apple", "リンゴ")
	s.Close()

	s, err = New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	list, err := s.ListWords()
	if err != nil {
		t.Fatalf("ListWords: %v", err)
	}
	if len(list) != 1 || list[0].Word != "apple" {
		t.Errorf("expected data to persist across reopen, got %+v", list)
	}
}
