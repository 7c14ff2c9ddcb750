package services

import (
	"brevet-times-service/internal/domain"
	"brevet-times-service/internal/platform/obs"
	"brevet-times-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var kmPerMile = decimal.RequireFromString("1.609344")

// One control of a sheet. Exactly one of Km or Miles is expected; Km wins when both are set.
type ControlInput struct {
	Km    *float64
	Miles *float64
}

type BrevetSheetRequest struct {
	BrevetKm  int
	StartTime time.Time
	Controls  []ControlInput
}

// BuildControlSheet computes open and close times for every control of a brevet.
//
// Rows keep the input order and are numbered from 1. Distances are reported
// with one decimal and times as RFC3339 in the start time's location.
// A single invalid control fails the whole sheet.
func BuildControlSheet(
	ctx context.Context,
	calc Calculator,
	req BrevetSheetRequest,
) (_ []domain.Control, err error) {
	defer obs.Time(ctx, "services.BuildControlSheet")(&err)

	if len(req.Controls) == 0 {
		return []domain.Control{}, nil
	}

	sheet := make([]domain.Control, 0, len(req.Controls))
	for i, in := range req.Controls {
		km, err := in.kilometers()
		if err != nil {
			return nil, fmt.Errorf("build control sheet: control %d: %w", i+1, err)
		}

		res, err := calc.Times(domain.ControlTimeRequest{
			ControlKm: km.InexactFloat64(),
			BrevetKm:  req.BrevetKm,
			StartTime: req.StartTime,
		})
		if err != nil {
			return nil, fmt.Errorf("build control sheet: control %d: %w", i+1, err)
		}

		sheet = append(sheet, domain.Control{
			Index:     i + 1,
			Miles:     km.Div(kmPerMile).Round(1).String(),
			Km:        km.Round(1).String(),
			OpenTime:  res.OpenTime.Format(time.RFC3339),
			CloseTime: res.CloseTime.Format(time.RFC3339),
		})
	}

	return sheet, nil
}

func (in ControlInput) kilometers() (decimal.Decimal, error) {
	switch {
	case in.Km != nil:
		return decimal.NewFromFloat(*in.Km), nil
	case in.Miles != nil:
		return decimal.NewFromFloat(*in.Miles).Mul(kmPerMile), nil
	default:
		return decimal.Zero, fmt.Errorf("km or miles is required: %w", domain.ErrInvalidDistance)
	}
}

// SubmitControls replaces the stored sheet with controls.
//
// Blank rows (no distance and no times) are dropped, rows without an index are
// numbered by position, and every row is stamped with a fresh submission id.
func SubmitControls(
	ctx context.Context,
	repo ports.ControlRepository,
	controls []domain.Control,
) (_ []domain.Control, err error) {
	defer obs.Time(ctx, "services.SubmitControls")(&err)

	if repo == nil {
		return nil, errors.New("submit controls: repository is nil")
	}

	brevetID := uuid.NewString()
	seen := make(map[int]struct{}, len(controls))
	rows := make([]domain.Control, 0, len(controls))
	for i, c := range controls {
		c.Miles = strings.TrimSpace(c.Miles)
		c.Km = strings.TrimSpace(c.Km)
		c.OpenTime = strings.TrimSpace(c.OpenTime)
		c.CloseTime = strings.TrimSpace(c.CloseTime)

		if c.Km == "" && c.Miles == "" && c.OpenTime == "" && c.CloseTime == "" {
			continue
		}

		if c.Index == 0 {
			c.Index = i + 1
		}
		if c.Index < 0 {
			return nil, fmt.Errorf("submit controls: row %d: index %d: %w", i+1, c.Index, domain.ErrInvalidControl)
		}
		if _, ok := seen[c.Index]; ok {
			return nil, fmt.Errorf("submit controls: row %d: duplicate index %d: %w", i+1, c.Index, domain.ErrInvalidControl)
		}
		seen[c.Index] = struct{}{}

		c.BrevetID = brevetID
		rows = append(rows, c)
	}

	if err := repo.ReplaceControls(ctx, rows); err != nil {
		return nil, fmt.Errorf("submit controls: %w", err)
	}

	return rows, nil
}

// ListControls returns every stored control row.
func ListControls(ctx context.Context, repo ports.ControlRepository) (_ []domain.Control, err error) {
	defer obs.Time(ctx, "services.ListControls")(&err)

	if repo == nil {
		return nil, errors.New("list controls: repository is nil")
	}

	controls, err := repo.ListControls(ctx)
	if err != nil {
		return nil, fmt.Errorf("list controls: %w", err)
	}

	return controls, nil
}
