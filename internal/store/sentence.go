package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type sentenceRepo struct {
	db *sql.DB
}

func (r *sentenceRepo) Add(ctx context.Context, text, language, source string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO sentences (text, language, source, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(text) DO NOTHING`,
		text, language, source, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("add sentence: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("add sentence: %w", err)
	}
	if n > 0 {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("sentence id: %w", err)
		}
		return id, nil
	}

	// Duplicate text; hand back the existing row.
	var id int64
	err = r.db.QueryRowContext(ctx, `SELECT id FROM sentences WHERE text = ?`, text).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("lookup sentence: %w", err)
	}
	return id, nil
}

func (r *sentenceRepo) List(ctx context.Context, language string) ([]Sentence, error) {
	q := `SELECT id, text, language, source, created_at FROM sentences`
	args := []any{}
	if language != "" {
		q += ` WHERE language = ?`
		args = append(args, language)
	}
	q += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query sentences: %w", err)
	}
	defer rows.Close()

	var out []Sentence
	for rows.Next() {
		s, err := scanSentence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sentenceRepo) Random(ctx context.Context, language string) (*Sentence, error) {
	q := `SELECT id, text, language, source, created_at FROM sentences`
	args := []any{}
	if language != "" {
		q += ` WHERE language = ?`
		args = append(args, language)
	}
	q += ` ORDER BY RANDOM() LIMIT 1`

	row := r.db.QueryRowContext(ctx, q, args...)
	s, err := scanSentence(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sentenceRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sentences WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete sentence: %w", err)
	}
	return nil
}

func (r *sentenceRepo) Count(ctx context.Context, language string) (int, error) {
	q := `SELECT COUNT(*) FROM sentences`
	args := []any{}
	if language != "" {
		q += ` WHERE language = ?`
		args = append(args, language)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sentences: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSentence(row scanner) (Sentence, error) {
	var s Sentence
	var created int64
	if err := row.Scan(&s.ID, &s.Text, &s.Language, &s.Source, &created); err != nil {
		if err == sql.ErrNoRows {
			return Sentence{}, err
		}
		return Sentence{}, fmt.Errorf("scan sentence: %w", err)
	}
	s.CreatedAt = time.Unix(created, 0)
	return s, nil
}
