package store

import (
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/pavelanni/wordquiz/internal/model"
)

var wordColumns = []string{"id", "word", "meaning", "created_at"}

// AddWord validates and stores a single word/meaning pair.
func (s *Store) AddWord(word, meaning string) (model.WordEntry, error) {
	p, err := model.NewWordPair(word, meaning)
	if err != nil {
		return model.WordEntry{}, err
	}
	entries, err := s.AddWords([]model.WordPair{p})
	if err != nil {
		return model.WordEntry{}, err
	}
	return entries[0], nil
}

// AddWords stores all pairs in one transaction. Either every pair is stored
// or none is.
func (s *Store) AddWords(pairs []model.WordPair) ([]model.WordEntry, error) {
	valid := make([]model.WordPair, 0, len(pairs))
	for _, p := range pairs {
		v, err := model.NewWordPair(p.Word, p.Meaning)
		if err != nil {
			return nil, err
		}
		valid = append(valid, v)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	entries := make([]model.WordEntry, 0, len(valid))
	for _, p := range valid {
		query, args, err := s.sb.Insert("words").
			Columns("word", "meaning", "created_at").
			Values(p.Word, p.Meaning, now).
			ToSql()
		if err != nil {
			return nil, err
		}
		res, err := tx.Exec(query, args...)
		if err != nil {
			return nil, fmt.Errorf("insert word %q: %w", p.Word, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		entries = append(entries, model.WordEntry{ID: id, Word: p.Word, Meaning: p.Meaning, CreatedAt: now})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	slog.Debug("stored words", "count", len(entries))
	return entries, nil
}

// ListWords returns all words in insertion order.
func (s *Store) ListWords() ([]model.WordEntry, error) {
	query, args, err := s.sb.Select(wordColumns...).From("words").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var words []model.WordEntry
	for rows.Next() {
		var w model.WordEntry
		if err := rows.Scan(&w.ID, &w.Word, &w.Meaning, &w.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// DeleteWord removes the word with the given id. Quiz results are not touched.
func (s *Store) DeleteWord(id int64) error {
	query, args, err := s.sb.Delete("words").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("word %d: %w", id, model.ErrNotFound)
	}
	slog.Info("deleted word", "id", id)
	return nil
}

// WordCount returns the number of stored words.
func (s *Store) WordCount() (int, error) {
	query, args, err := s.sb.Select("COUNT(*)").From("words").ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return count, nil
}
