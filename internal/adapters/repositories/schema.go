package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the controls table. The DDL is valid for both SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createControlsQuery := `
	CREATE TABLE IF NOT EXISTS controls (
		control_index INTEGER PRIMARY KEY,
		miles TEXT NOT NULL,
		km TEXT NOT NULL,
		open_time TEXT NOT NULL,
		close_time TEXT NOT NULL,
		brevet_id TEXT NOT NULL DEFAULT ''
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_controls_brevet_id
    ON controls(brevet_id);
	`

	statements := []string{
		createControlsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
