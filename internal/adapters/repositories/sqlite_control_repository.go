package repositories

import (
	"brevet-times-service/internal/domain"
	"brevet-times-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the ControlRepository port.
type SqliteControlRepository struct{ DB *sql.DB }

func NewSqliteControlRepository(db *sql.DB) *SqliteControlRepository {
	return &SqliteControlRepository{DB: db}
}

// Delete every stored row and insert controls in one transaction.
func (s *SqliteControlRepository) ReplaceControls(ctx context.Context, controls []domain.Control) (err error) {
	defer obs.Time(ctx, "sqlite.ReplaceControls")(&err)

	if s.DB == nil {
		return errors.New("sqlite control repository: DB is nil")
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
	INSERT INTO controls (
		control_index,
		miles,
		km,
		open_time,
		close_time,
		brevet_id
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("replace controls: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range controls {
		if _, err := stmt.ExecContext(ctx, c.Index, c.Miles, c.Km, c.OpenTime, c.CloseTime, c.BrevetID); err != nil {
			return fmt.Errorf("replace controls: insert control_index=%d: %w", c.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace controls: commit: %w", err)
	}

	return nil
}

// Return all controls stored in the database.
func (s *SqliteControlRepository) ListControls(ctx context.Context) (_ []domain.Control, err error) {
	defer obs.Time(ctx, "sqlite.ListControls")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite control repository: DB is nil")
	}

	query := `
	SELECT
		control_index,
		miles,
		km,
		open_time,
		close_time,
		brevet_id
	FROM controls
	ORDER BY control_index;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list controls: query controls table: %w", err)
	}
	defer rows.Close()

	return scanControls(rows)
}

func scanControls(rows *sql.Rows) ([]domain.Control, error) {
	controls := make([]domain.Control, 0, 16)
	for rows.Next() {
		var c domain.Control
		if err := rows.Scan(&c.Index, &c.Miles, &c.Km, &c.OpenTime, &c.CloseTime, &c.BrevetID); err != nil {
			return nil, fmt.Errorf("list controls: scan row: %w", err)
		}
		controls = append(controls, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list controls: row iteration: %w", err)
	}

	return controls, nil
}
