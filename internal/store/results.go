package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/pavelanni/wordquiz/internal/model"
)

var resultColumns = []string{"id", "session_id", "mode", "correct", "total", "percent", "played_at"}

// AppendResult records a quiz outcome that is not tied to a session id.
func (s *Store) AppendResult(mode model.Mode, correct, total int) (model.ResultRecord, error) {
	return s.AppendSessionResult("", mode, correct, total)
}

// AppendSessionResult records the outcome of the given quiz session. A session
// is stored at most once: a repeated call returns the record already stored.
func (s *Store) AppendSessionResult(sessionID string, mode model.Mode, correct, total int) (model.ResultRecord, error) {
	if total < 1 {
		return model.ResultRecord{}, model.NewValidationError("total", "must be at least 1")
	}
	if correct < 0 || correct > total {
		return model.ResultRecord{}, model.NewValidationError("correct", "must be between 0 and total")
	}

	rec := model.ResultRecord{
		SessionID: sessionID,
		Mode:      mode,
		Correct:   correct,
		Total:     total,
		Percent:   model.Percent(correct, total),
		PlayedAt:  time.Now().UTC(),
	}

	query, args, err := s.sb.Insert("results").
		Columns("session_id", "mode", "correct", "total", "percent", "played_at").
		Values(nullString(sessionID), rec.Mode, rec.Correct, rec.Total, rec.Percent, rec.PlayedAt).
		Suffix("ON CONFLICT (session_id) DO NOTHING").
		ToSql()
	if err != nil {
		return model.ResultRecord{}, err
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return model.ResultRecord{}, fmt.Errorf("insert result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.ResultRecord{}, err
	}
	if n == 0 {
		slog.Warn("quiz session already recorded", "session_id", sessionID)
		return s.resultBySession(sessionID)
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return model.ResultRecord{}, err
	}
	slog.Info("recorded quiz result",
		"mode", rec.Mode, "correct", rec.Correct, "total", rec.Total, "percent", rec.Percent)
	return rec, nil
}

// RecentResults returns at most limit results, most recent first.
// A non-positive limit means model.DefaultHistoryLimit.
func (s *Store) RecentResults(limit int) ([]model.ResultRecord, error) {
	if limit <= 0 {
		limit = model.DefaultHistoryLimit
	}
	query, args, err := s.sb.Select(resultColumns...).
		From("results").
		OrderBy("played_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []model.ResultRecord
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Store) resultBySession(sessionID string) (model.ResultRecord, error) {
	query, args, err := s.sb.Select(resultColumns...).
		From("results").
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return model.ResultRecord{}, err
	}
	r, err := scanResult(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return model.ResultRecord{}, fmt.Errorf("result for session %s: %w", sessionID, model.ErrNotFound)
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (model.ResultRecord, error) {
	var r model.ResultRecord
	var sessionID sql.NullString
	if err := row.Scan(&r.ID, &sessionID, &r.Mode, &r.Correct, &r.Total, &r.Percent, &r.PlayedAt); err != nil {
		return model.ResultRecord{}, err
	}
	r.SessionID = sessionID.String
	return r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
