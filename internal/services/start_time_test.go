package services

import (
	"brevet-times-service/internal/domain"
	"errors"
	"testing"
	"time"
)

func TestParseStartTime(t *testing.T) {
	pdt := time.FixedZone("PDT", -7*60*60)

	tests := []struct {
		in   string
		loc  *time.Location
		want time.Time
	}{
		{"2023-06-01T06:00:00Z", nil, time.Date(2023, 6, 1, 6, 0, 0, 0, time.UTC)},
		{"2023-06-01T06:00:00-07:00", time.UTC, time.Date(2023, 6, 1, 13, 0, 0, 0, time.UTC)},
		{"2023-06-01T06:00", nil, time.Date(2023, 6, 1, 6, 0, 0, 0, time.UTC)},
		{"2023-06-01 06:00", pdt, time.Date(2023, 6, 1, 6, 0, 0, 0, pdt)},
		{" 2023-06-01T06:00:30 ", nil, time.Date(2023, 6, 1, 6, 0, 30, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := ParseStartTime(tt.in, tt.loc)
		if err != nil {
			t.Errorf("ParseStartTime(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseStartTime(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseStartTimeInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "tomorrow", "2023-13-01T06:00"} {
		if _, err := ParseStartTime(in, time.UTC); !errors.Is(err, domain.ErrInvalidStartTime) {
			t.Errorf("ParseStartTime(%q) err = %v; want ErrInvalidStartTime", in, err)
		}
	}
}
