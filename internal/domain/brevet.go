package domain

import "sort"

// A distance range ridden at its own minimum and maximum speed.
// Each bracket's speeds govern only the part of a distance that falls inside it.
type SpeedBracket struct {
	LowerKm float64
	UpperKm float64
	MinKph  float64
	MaxKph  float64
}

// Span returns the length of the bracket in kilometers.
func (b SpeedBracket) Span() float64 { return b.UpperKm - b.LowerKm }

// Total elapsed-time ceiling for a sanctioned brevet distance.
type OverallLimit struct {
	BrevetKm int
	MaxHours float64
}

// ACP speed brackets, ordered and contiguous over [0, 1300] km.
// Distances past the last upper bound are ridden at the last bracket's speeds.
var speedBrackets = []SpeedBracket{
	{LowerKm: 0, UpperKm: 200, MinKph: 15, MaxKph: 34},
	{LowerKm: 200, UpperKm: 400, MinKph: 15, MaxKph: 32},
	{LowerKm: 400, UpperKm: 600, MinKph: 15, MaxKph: 30},
	{LowerKm: 600, UpperKm: 1000, MinKph: 11.428, MaxKph: 28},
	{LowerKm: 1000, UpperKm: 1300, MinKph: 13.333, MaxKph: 26},
}

var overallLimits = map[int]float64{
	200:  13.5,
	300:  20.0,
	400:  27.0,
	600:  40.0,
	1000: 75.0,
	1300: 90.0,
}

// SpeedBrackets returns a copy of the bracket table.
func SpeedBrackets() []SpeedBracket {
	out := make([]SpeedBracket, len(speedBrackets))
	copy(out, speedBrackets)
	return out
}

// OverallLimitHours returns the total time limit for a sanctioned brevet distance.
func OverallLimitHours(brevetKm int) (float64, bool) {
	h, ok := overallLimits[brevetKm]
	return h, ok
}

// IsSanctioned reports whether brevetKm is one of the sanctioned distances.
func IsSanctioned(brevetKm int) bool {
	_, ok := overallLimits[brevetKm]
	return ok
}

// SanctionedDistances lists the sanctioned brevet distances in ascending order.
func SanctionedDistances() []int {
	out := make([]int, 0, len(overallLimits))
	for km := range overallLimits {
		out = append(out, km)
	}
	sort.Ints(out)
	return out
}

// OverallLimits returns the limit table ordered by brevet distance.
func OverallLimits() []OverallLimit {
	out := make([]OverallLimit, 0, len(overallLimits))
	for _, km := range SanctionedDistances() {
		out = append(out, OverallLimit{BrevetKm: km, MaxHours: overallLimits[km]})
	}
	return out
}
