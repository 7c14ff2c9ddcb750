package services

import (
	"brevet-times-service/internal/domain"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFinishTolerance is the fraction of the brevet distance a final control
// may lie past the nominal distance and still count as the finish.
const DefaultFinishTolerance = 0.20

// Controls up to this distance on a 200 km brevet close no earlier than one
// hour after the start.
const (
	minimumWindowKm     = 60
	minimumWindowBrevet = 200
)

var (
	brackets      = domain.SpeedBrackets()
	minutesInHour = decimal.NewFromInt(60)
)

// Calculator computes ACP control open and close times.
//
// It is a value type holding only configuration, so a single Calculator may be
// shared by any number of goroutines.
type Calculator struct {
	// FinishTolerance is the fraction of the brevet distance past which a
	// control is rejected instead of being treated as the finish.
	FinishTolerance float64
}

// DefaultCalculator backs OpenTime and CloseTime.
var DefaultCalculator = Calculator{FinishTolerance: DefaultFinishTolerance}

// OpenTime returns the earliest instant a rider may check in at the control.
func OpenTime(controlKm float64, brevetKm int, start time.Time) (time.Time, error) {
	return DefaultCalculator.Open(controlKm, brevetKm, start)
}

// CloseTime returns the latest instant a rider may check in at the control.
func CloseTime(controlKm float64, brevetKm int, start time.Time) (time.Time, error) {
	return DefaultCalculator.Close(controlKm, brevetKm, start)
}

// Open walks the bracket table at maximum speed up to the control distance,
// including any part of a finish control placed past the brevet distance.
func (c Calculator) Open(controlKm float64, brevetKm int, start time.Time) (time.Time, error) {
	ctl, err := c.control(controlKm, brevetKm, start)
	if err != nil {
		return time.Time{}, fmt.Errorf("open time: %w", err)
	}

	minutes := elapsedMinutes(ctl.km, func(b domain.SpeedBracket) float64 { return b.MaxKph })
	return start.Add(time.Duration(minutes) * time.Minute), nil
}

// Close walks the bracket table at minimum speed, then applies the finish cap
// and, on a 200 km brevet, the one-hour minimum window.
func (c Calculator) Close(controlKm float64, brevetKm int, start time.Time) (time.Time, error) {
	ctl, err := c.control(controlKm, brevetKm, start)
	if err != nil {
		return time.Time{}, fmt.Errorf("close time: %w", err)
	}

	if ctl.finish {
		return start.Add(time.Duration(ctl.limitMinutes) * time.Minute), nil
	}

	minutes := elapsedMinutes(ctl.km, func(b domain.SpeedBracket) float64 { return b.MinKph })
	if brevetKm == minimumWindowBrevet && controlKm <= minimumWindowKm && minutes < 60 {
		minutes = 60
	}
	// The overall limit also bounds intermediate controls.
	if minutes > ctl.limitMinutes {
		minutes = ctl.limitMinutes
	}

	return start.Add(time.Duration(minutes) * time.Minute), nil
}

// Times computes both ends of the control window for one request.
func (c Calculator) Times(req domain.ControlTimeRequest) (domain.ControlTimeResult, error) {
	openAt, err := c.Open(req.ControlKm, req.BrevetKm, req.StartTime)
	if err != nil {
		return domain.ControlTimeResult{}, err
	}

	closeAt, err := c.Close(req.ControlKm, req.BrevetKm, req.StartTime)
	if err != nil {
		return domain.ControlTimeResult{}, err
	}

	return domain.ControlTimeResult{OpenTime: openAt, CloseTime: closeAt}, nil
}

type validControl struct {
	km           decimal.Decimal
	finish       bool
	limitMinutes int64
}

// control validates the inputs before any bracket arithmetic runs.
func (c Calculator) control(controlKm float64, brevetKm int, start time.Time) (validControl, error) {
	if math.IsNaN(controlKm) || math.IsInf(controlKm, 0) || controlKm < 0 {
		return validControl{}, fmt.Errorf("control km %v: %w", controlKm, domain.ErrInvalidDistance)
	}

	limitHours, ok := domain.OverallLimitHours(brevetKm)
	if !ok {
		return validControl{}, fmt.Errorf(
			"brevet km %d (sanctioned: %v): %w",
			brevetKm, domain.SanctionedDistances(), domain.ErrUnsupportedBrevetDistance,
		)
	}

	if start.IsZero() {
		return validControl{}, fmt.Errorf("start time is unset: %w", domain.ErrInvalidStartTime)
	}

	tolerance := c.FinishTolerance
	if tolerance < 0 || math.IsNaN(tolerance) {
		tolerance = 0
	}

	km := decimal.NewFromFloat(controlKm)
	brevet := decimal.NewFromInt(int64(brevetKm))
	furthest := brevet.Mul(decimal.NewFromInt(1).Add(decimal.NewFromFloat(tolerance)))
	if km.GreaterThan(furthest) {
		return validControl{}, fmt.Errorf(
			"control km %v past %s km for a %d km brevet: %w",
			controlKm, furthest.String(), brevetKm, domain.ErrControlBeyondFinish,
		)
	}

	return validControl{
		km:           km,
		finish:       km.GreaterThanOrEqual(brevet),
		limitMinutes: decimal.NewFromFloat(limitHours).Mul(minutesInHour).Round(0).IntPart(),
	}, nil
}

// elapsedMinutes sums the riding time to reach km, each bracket contributing
// only the distance inside it at its own speed, and rounds to the nearest minute.
// The last bracket is open-ended.
func elapsedMinutes(km decimal.Decimal, speed func(domain.SpeedBracket) float64) int64 {
	hours := decimal.Zero

	for i, b := range brackets {
		lower := decimal.NewFromFloat(b.LowerKm)
		if km.LessThanOrEqual(lower) {
			break
		}

		end := decimal.NewFromFloat(b.UpperKm)
		if km.LessThan(end) || i == len(brackets)-1 {
			end = km
		}

		hours = hours.Add(end.Sub(lower).Div(decimal.NewFromFloat(speed(b))))
	}

	return hours.Mul(minutesInHour).Round(0).IntPart()
}
