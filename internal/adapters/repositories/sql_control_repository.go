package repositories

import (
	"brevet-times-service/internal/domain"
	"brevet-times-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLControlRepository is the Postgres-backed ControlRepository (pgx stdlib driver).
type SQLControlRepository struct {
	DB *sql.DB
}

func NewSQLControlRepository(db *sql.DB) *SQLControlRepository {
	return &SQLControlRepository{DB: db}
}

// Delete every stored row and insert controls in one transaction.
func (s *SQLControlRepository) ReplaceControls(ctx context.Context, controls []domain.Control) (err error) {
	defer obs.Time(ctx, "postgres.ReplaceControls")(&err)

	if s.DB == nil {
		return errors.New("control repository: db is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace controls: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM controls;`); err != nil {
		return fmt.Errorf("replace controls: clear controls table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO controls (control_index, miles, km, open_time, close_time, brevet_id)
    VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("replace controls: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range controls {
		if _, err := stmt.ExecContext(ctx, c.Index, c.Miles, c.Km, c.OpenTime, c.CloseTime, c.BrevetID); err != nil {
			return fmt.Errorf("replace controls control_index=%d: %w", c.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace controls commit: %w", err)
	}

	return nil
}

// Fetch every stored control ordered by index.
func (s *SQLControlRepository) ListControls(ctx context.Context) (_ []domain.Control, err error) {
	defer obs.Time(ctx, "postgres.ListControls")(&err)

	if s.DB == nil {
		return nil, errors.New("control repository: db is nil")
	}

	q := `
	SELECT control_index, miles, km, open_time, close_time, brevet_id
    FROM controls
    ORDER BY control_index;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list controls: query controls table: %w", err)
	}
	defer rows.Close()

	return scanControls(rows)
}
