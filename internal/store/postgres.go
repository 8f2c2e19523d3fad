package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "talent_messenger/pkg/errors"
	"talent_messenger/pkg/logger"
)

// postgresMedium keeps one row per collection; the payload column is
// opaque text replaced wholesale on every save.
type postgresMedium struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewPostgresMedium(db *pgxpool.Pool, log logger.Logger) (Medium, error) {
	m := &postgresMedium{db: db, log: log}
	if err := m.migrate(context.Background()); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *postgresMedium) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`

	if _, err := m.db.Exec(ctx, query); err != nil {
		m.log.Error("Failed to create collections table", "error", err)
		return fmt.Errorf("%w: migrate: %v", apperrors.ErrMediumUnavailable, err)
	}
	return nil
}

func (m *postgresMedium) Load(ctx context.Context, name string) (string, bool, error) {
	query := `SELECT payload FROM collections WHERE name = $1`

	var payload string
	err := m.db.QueryRow(ctx, query, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		m.log.Error("Failed to load collection", "collection", name, "error", err)
		return "", false, fmt.Errorf("%w: read %q: %v", apperrors.ErrMediumUnavailable, name, err)
	}

	return payload, true, nil
}

func (m *postgresMedium) Save(ctx context.Context, name, payload string) error {
	query := `
		INSERT INTO collections (name, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`

	if _, err := m.db.Exec(ctx, query, name, payload); err != nil {
		m.log.Error("Failed to save collection", "collection", name, "error", err)
		return fmt.Errorf("%w: write %q: %v", apperrors.ErrMediumUnavailable, name, err)
	}
	return nil
}
