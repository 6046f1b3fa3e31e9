package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// dayFormat keys rows to the local calendar day, so "practices today"
// follows the user's clock rather than UTC.
const dayFormat = "2006-01-02"

type practiceRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *practiceRepo) RecordCompletion(ctx context.Context, p Practice) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO practices
			(sequence, session_id, sentence, language, mode, accuracy, correct, attempts, duration_ms, day, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, p.SessionID, p.Sentence, p.Language, p.Mode,
		p.Accuracy, p.Correct, p.Attempts, p.Duration.Milliseconds(),
		ts.Format(dayFormat), ts.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save practice: %w", err)
	}

	// A completed run invalidates the resume point.
	_, err = tx.ExecContext(ctx, `DELETE FROM progress WHERE sentence = ?`, p.Sentence)
	if err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *practiceRepo) CountToday(ctx context.Context, sentence string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM practices WHERE sentence = ? AND day = ?`,
		sentence, time.Now().Format(dayFormat),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	return n, nil
}

func (r *practiceRepo) SaveProgress(ctx context.Context, sentence string, wordIndex int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress (sentence, word_index, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(sentence) DO UPDATE SET word_index = excluded.word_index, updated_at = excluded.updated_at`,
		sentence, wordIndex, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *practiceRepo) Progress(ctx context.Context, sentence string) (int, bool, error) {
	var idx int
	err := r.db.QueryRowContext(ctx,
		`SELECT word_index FROM progress WHERE sentence = ?`, sentence,
	).Scan(&idx)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get progress: %w", err)
	}
	return idx, true, nil
}

func (r *practiceRepo) ClearProgress(ctx context.Context, sentence string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM progress WHERE sentence = ?`, sentence)
	if err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

func (r *practiceRepo) History(ctx context.Context, limit int) ([]Practice, error) {
	q := `SELECT id, sequence, session_id, sentence, language, mode, accuracy, correct, attempts, duration_ms, timestamp
	      FROM practices ORDER BY sequence DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Practice
	for rows.Next() {
		var p Practice
		var durMs, ts int64
		err := rows.Scan(&p.ID, &p.Sequence, &p.SessionID, &p.Sentence, &p.Language,
			&p.Mode, &p.Accuracy, &p.Correct, &p.Attempts, &durMs, &ts)
		if err != nil {
			return nil, fmt.Errorf("scan practice: %w", err)
		}
		p.Duration = time.Duration(durMs) * time.Millisecond
		p.Timestamp = time.Unix(ts, 0)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *practiceRepo) Days(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT day FROM practices ORDER BY day DESC`)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *practiceRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(DISTINCT sentence),
		        COUNT(DISTINCT day),
		        COALESCE(SUM(attempts), 0),
		        COALESCE(SUM(correct), 0),
		        COALESCE(CAST(ROUND(AVG(accuracy)) AS INTEGER), 0)
		 FROM practices`,
	).Scan(&t.Practices, &t.Sentences, &t.Days, &t.Attempts, &t.Correct, &t.AvgAccuracy)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}

func (r *practiceRepo) LanguageStats(ctx context.Context) ([]LanguageStat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT language, COUNT(*), CAST(ROUND(AVG(accuracy)) AS INTEGER)
		 FROM practices GROUP BY language ORDER BY COUNT(*) DESC, language`)
	if err != nil {
		return nil, fmt.Errorf("query language stats: %w", err)
	}
	defer rows.Close()

	var out []LanguageStat
	for rows.Next() {
		var s LanguageStat
		if err := rows.Scan(&s.Language, &s.Practices, &s.AvgAccuracy); err != nil {
			return nil, fmt.Errorf("scan language stat: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
