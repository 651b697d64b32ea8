package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// progressKey is the fixed row name for the single resume blob.
const progressKey = "assessment-progress"

type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Save(ctx context.Context, blob []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO progress (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		progressKey, string(blob), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Load(ctx context.Context) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM progress WHERE name = ?`, progressKey,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return []byte(data), nil
}

func (r *progressRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM progress WHERE name = ?`, progressKey)
	if err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
