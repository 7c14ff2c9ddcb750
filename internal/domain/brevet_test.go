package domain

import "testing"

func TestSpeedBracketsContiguous(t *testing.T) {
	brackets := SpeedBrackets()
	if len(brackets) != 5 {
		t.Fatalf("expected 5 brackets, got %d", len(brackets))
	}

	if brackets[0].LowerKm != 0 {
		t.Fatalf("first bracket starts at %v, want 0", brackets[0].LowerKm)
	}
	if last := brackets[len(brackets)-1]; last.UpperKm != 1300 {
		t.Fatalf("last bracket ends at %v, want 1300", last.UpperKm)
	}

	for i := 1; i < len(brackets); i++ {
		if brackets[i].LowerKm != brackets[i-1].UpperKm {
			t.Errorf("bracket %d starts at %v, previous ends at %v", i, brackets[i].LowerKm, brackets[i-1].UpperKm)
		}
		if brackets[i].Span() <= 0 {
			t.Errorf("bracket %d has non-positive span %v", i, brackets[i].Span())
		}
	}
}

func TestSpeedBracketsReturnsCopy(t *testing.T) {
	b := SpeedBrackets()
	b[0].MaxKph = 1

	if SpeedBrackets()[0].MaxKph != 34 {
		t.Fatal("mutating the returned slice changed the static table")
	}
}

func TestOverallLimitHours(t *testing.T) {
	tests := []struct {
		brevet int
		hours  float64
		ok     bool
	}{
		{200, 13.5, true},
		{300, 20, true},
		{400, 27, true},
		{600, 40, true},
		{1000, 75, true},
		{1300, 90, true},
		{250, 0, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		h, ok := OverallLimitHours(tt.brevet)
		if ok != tt.ok || h != tt.hours {
			t.Errorf("OverallLimitHours(%d) = (%v, %t); want (%v, %t)", tt.brevet, h, ok, tt.hours, tt.ok)
		}
		if IsSanctioned(tt.brevet) != tt.ok {
			t.Errorf("IsSanctioned(%d) = %t; want %t", tt.brevet, !tt.ok, tt.ok)
		}
	}
}

func TestOverallLimitsOrdered(t *testing.T) {
	limits := OverallLimits()
	want := []int{200, 300, 400, 600, 1000, 1300}
	if len(limits) != len(want) {
		t.Fatalf("expected %d limits, got %d", len(want), len(limits))
	}
	for i, l := range limits {
		if l.BrevetKm != want[i] {
			t.Errorf("limit %d = %d km, want %d", i, l.BrevetKm, want[i])
		}
	}
}
