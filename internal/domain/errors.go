package domain

import "errors"

// Validation failures raised before any bracket arithmetic runs.
var (
	ErrInvalidDistance           = errors.New("invalid control distance")
	ErrUnsupportedBrevetDistance = errors.New("unsupported brevet distance")
	ErrInvalidStartTime          = errors.New("invalid start time")
	ErrControlBeyondFinish       = errors.New("control lies beyond the finish tolerance")

	// Raised by control-sheet submission for malformed rows.
	ErrInvalidControl = errors.New("invalid control row")
)

// IsValidation reports whether err was caused by caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidDistance) ||
		errors.Is(err, ErrUnsupportedBrevetDistance) ||
		errors.Is(err, ErrInvalidStartTime) ||
		errors.Is(err, ErrControlBeyondFinish) ||
		errors.Is(err, ErrInvalidControl)
}
