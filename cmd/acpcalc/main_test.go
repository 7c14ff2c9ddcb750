package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"brevet-times-service/internal/api/dto"
)

func TestAcpcalcTable(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"--brevet", "200", "--start", "2023-06-01T06:00", "0", "100", "200"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"2023-06-01T08:56:00Z", "2023-06-01T12:40:00Z", "2023-06-01T19:30:00Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestAcpcalcJSONMiles(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"-b", "200", "-s", "2023-06-01T06:00:00Z", "--miles", "--json", "62.137"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sheet []dto.ControlRow
	if err := json.Unmarshal(out.Bytes(), &sheet); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sheet) != 1 || sheet[0].Km != "100" {
		t.Fatalf("unexpected sheet: %+v", sheet)
	}
}

func TestAcpcalcRejectsBadInput(t *testing.T) {
	tests := [][]string{
		{"--start", "2023-06-01T06:00", "--", "-5"},
		{"--brevet", "250", "--start", "2023-06-01T06:00", "10"},
		{"--start", "2023-06-01T06:00", "ten"},
		{"10"},
	}

	for _, args := range tests {
		var out bytes.Buffer
		cmd := newRootCmd(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		if err := cmd.Execute(); err == nil {
			t.Errorf("acpcalc %v succeeded, want error", args)
		}
	}
}

func TestAcpcalcLimits(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs([]string{"limits"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "13.5") || !strings.Contains(out.String(), "11.428") {
		t.Errorf("limits output incomplete:\n%s", out.String())
	}
}

func TestAcpcalcEnvironmentDefaults(t *testing.T) {
	t.Setenv("TIMEZONE", "America/Los_Angeles")
	t.Setenv("FINISH_TOLERANCE", "0")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--start", "2023-06-01T06:00", "0"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "2023-06-01T06:00:00-07:00") {
		t.Errorf("start not read in TIMEZONE:\n%s", out.String())
	}

	out.Reset()
	cmd = newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--start", "2023-06-01T06:00", "205"})
	if err := cmd.Execute(); err == nil {
		t.Error("205 km accepted with FINISH_TOLERANCE=0")
	}

	out.Reset()
	cmd = newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--start", "2023-06-01T06:00", "--finish-tolerance", "0.2", "205"})
	if err := cmd.Execute(); err != nil {
		t.Errorf("flag should override FINISH_TOLERANCE: %v", err)
	}
}

func TestAcpcalcRejectsBadToleranceEnv(t *testing.T) {
	t.Setenv("FINISH_TOLERANCE", "lots")

	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--start", "2023-06-01T06:00", "10"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for invalid FINISH_TOLERANCE")
	}
}
