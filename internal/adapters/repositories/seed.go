package repositories

import (
	"brevet-times-service/internal/domain"
	"brevet-times-service/internal/ports"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type ControlSeed struct {
	Index     int    `json:"index"`
	Miles     string `json:"miles"`
	Km        string `json:"km"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// Populate the repository with a control sheet from a JSON file.
// Existing rows are replaced.
func SeedFromJSON(ctx context.Context, repo ports.ControlRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed controls: read %q: %w", jsonPath, err)
	}

	var data []ControlSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed controls: parse json: %w", err)
	}

	rows := make([]domain.Control, 0, len(data))
	for i, item := range data {
		index := item.Index
		if index <= 0 {
			return fmt.Errorf("seed controls: invalid index at row %d: %d", i+1, index)
		}

		km := strings.TrimSpace(item.Km)
		if km == "" {
			return fmt.Errorf("seed controls: row %d: km cannot be empty", i+1)
		}

		rows = append(rows, domain.Control{
			Index:     index,
			Miles:     strings.TrimSpace(item.Miles),
			Km:        km,
			OpenTime:  strings.TrimSpace(item.OpenTime),
			CloseTime: strings.TrimSpace(item.CloseTime),
			BrevetID:  "seed",
		})
	}

	if err := repo.ReplaceControls(ctx, rows); err != nil {
		return fmt.Errorf("seed controls: %w", err)
	}

	return nil
}
