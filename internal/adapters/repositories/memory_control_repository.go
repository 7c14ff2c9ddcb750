package repositories

import (
	"brevet-times-service/internal/domain"
	"context"
	"slices"
	"sync"
)

// In-memory ControlRepository for tests and database-less runs.
type MemoryControlRepository struct {
	mu       sync.RWMutex
	controls []domain.Control
}

func NewMemoryControlRepository() *MemoryControlRepository {
	return &MemoryControlRepository{}
}

func (m *MemoryControlRepository) ReplaceControls(ctx context.Context, controls []domain.Control) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := slices.Clone(controls)
	slices.SortFunc(rows, func(a, b domain.Control) int { return a.Index - b.Index })

	m.mu.Lock()
	m.controls = rows
	m.mu.Unlock()
	return nil
}

func (m *MemoryControlRepository) ListControls(ctx context.Context) ([]domain.Control, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Control, len(m.controls))
	copy(out, m.controls)
	return out, nil
}
