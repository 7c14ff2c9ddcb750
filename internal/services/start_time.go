package services

import (
	"brevet-times-service/internal/domain"
	"fmt"
	"strings"
	"time"
)

// Layouts accepted without an explicit offset; they are read in the caller's location.
var localStartLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseStartTime reads a brevet start instant.
// RFC3339 values keep their offset; the local layouts are interpreted in loc.
func ParseStartTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("start time is empty: %w", domain.ErrInvalidStartTime)
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	for _, layout := range localStartLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("parse start time %q: %w", s, domain.ErrInvalidStartTime)
}
