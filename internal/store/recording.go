package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type recordingRepo struct {
	db *sql.DB
}

func (r *recordingRepo) Save(ctx context.Context, rec Recording) (int64, error) {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO recordings (session_id, sentence, language, path, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Sentence, rec.Language, rec.Path,
		rec.Duration.Milliseconds(), created.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("save recording: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recording id: %w", err)
	}
	return id, nil
}

func (r *recordingRepo) BySentence(ctx context.Context, sentence string, limit int) ([]Recording, error) {
	q := `SELECT id, session_id, sentence, language, path, duration_ms, created_at
	      FROM recordings WHERE sentence = ? ORDER BY id DESC`
	args := []any{sentence}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query recordings: %w", err)
	}
	defer rows.Close()

	var out []Recording
	for rows.Next() {
		var rec Recording
		var durMs, created int64
		err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Sentence, &rec.Language,
			&rec.Path, &durMs, &created)
		if err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		rec.Duration = time.Duration(durMs) * time.Millisecond
		rec.CreatedAt = time.Unix(created, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *recordingRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recordings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recordings: %w", err)
	}
	return n, nil
}
