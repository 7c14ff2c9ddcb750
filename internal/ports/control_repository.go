package ports

import (
	"brevet-times-service/internal/domain"
	"context"
)

// Port: a boundary for storing submitted control rows.
// Rows are opaque text computed elsewhere; implementations never recompute them.
type ControlRepository interface {
	// Replace every stored row with controls in a single unit of work.
	ReplaceControls(ctx context.Context, controls []domain.Control) error
	// Retrieve every stored row ordered by control index.
	ListControls(ctx context.Context) ([]domain.Control, error)
}
