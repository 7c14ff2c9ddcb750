package domain

import "time"

// Input to a single open/close calculation. Never persisted.
// ControlKm may exceed BrevetKm slightly when the final control is placed past
// the nominal distance.
type ControlTimeRequest struct {
	ControlKm float64
	BrevetKm  int
	StartTime time.Time
}

// Output of a single calculation. CloseTime is never before OpenTime.
type ControlTimeResult struct {
	OpenTime  time.Time
	CloseTime time.Time
}

// Window returns the length of time the control is open.
func (r ControlTimeResult) Window() time.Duration { return r.CloseTime.Sub(r.OpenTime) }

// Represents one stored row of a submitted control sheet.
// Values are kept as the text the calculator's caller produced; storage never
// recomputes them.
type Control struct {
	Index     int
	Miles     string
	Km        string
	OpenTime  string
	CloseTime string
	BrevetID  string
}
