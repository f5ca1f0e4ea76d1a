package store

import (
	"fmt"
	"time"

	"github.com/pavelanni/wordquiz/internal/model"
)

// Snapshot gathers every word and the most recent results for export.
func (s *Store) Snapshot(historyLimit int) (model.Export, error) {
	words, err := s.ListWords()
	if err != nil {
		return model.Export{}, fmt.Errorf("list words: %w", err)
	}
	results, err := s.RecentResults(historyLimit)
	if err != nil {
		return model.Export{}, fmt.Errorf("recent results: %w", err)
	}
	return model.Export{
		ExportedAt: time.Now().UTC(),
		Words:      words,
		Results:    results,
		Summary:    model.Summarize(results),
	}, nil
}
