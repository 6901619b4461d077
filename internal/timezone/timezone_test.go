package timezone

import "testing"

func TestLocationFallsBackToDefault(t *testing.T) {
	if got := Location("Not/AZone").String(); got != DefaultTimezone {
		t.Errorf("Location() = %s, want %s", got, DefaultTimezone)
	}
	if got := Location("").String(); got != DefaultTimezone {
		t.Errorf("Location(\"\") = %s, want %s", got, DefaultTimezone)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("UTC", "2025-11-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Hour() != 0 || d.Day() != 17 {
		t.Errorf("unexpected date %v", d)
	}
	if _, err := ParseDate("UTC", "17/11/2025"); err == nil {
		t.Error("expected error for non ISO date")
	}
}
