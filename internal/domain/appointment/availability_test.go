package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// 2025-11-17 is a Monday.
var monday = time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 11, 17, hour, minute, 0, 0, time.UTC)
}

func morningSchedule() []models.PractitionerSchedule {
	return []models.PractitionerSchedule{
		{Weekday: int(time.Monday), StartTime: "09:00:00", EndTime: "12:00:00"},
	}
}

func formatAll(slots []time.Time) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = FormatClock(s)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGenerateSlots_EmptyCalendar(t *testing.T) {
	windows, err := WindowsFor(monday, morningSchedule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slots, err := GenerateSlots(SlotQuery{
		Windows:  windows,
		Duration: 30 * time.Minute,
		Index:    NewCalendarIndex(nil),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00:00", "09:30:00", "10:00:00", "10:30:00", "11:00:00", "11:30:00"}
	if got := formatAll(slots); !equalStrings(got, want) {
		t.Errorf("slots = %v, want %v", got, want)
	}
}

func TestGenerateSlots_ExcludesBookedInterval(t *testing.T) {
	windows, _ := WindowsFor(monday, morningSchedule())
	idx := NewCalendarIndex([]models.Appointment{
		{StartTime: at(10, 0), EndTime: at(10, 30), Status: string(StatusBooked)},
	})

	slots, err := GenerateSlots(SlotQuery{Windows: windows, Duration: 30 * time.Minute, Index: idx})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range formatAll(slots) {
		if s == "10:00:00" {
			t.Fatal("expected 10:00:00 to be excluded")
		}
	}
	if len(slots) != 5 {
		t.Errorf("expected 5 slots, got %d", len(slots))
	}
}

func TestGenerateSlots_CancelledFreesInterval(t *testing.T) {
	windows, _ := WindowsFor(monday, morningSchedule())
	idx := NewCalendarIndex([]models.Appointment{
		{StartTime: at(10, 0), EndTime: at(10, 30), Status: string(StatusCancelled)},
		{StartTime: at(11, 0), EndTime: at(11, 30), Status: string(StatusNoShow)},
	})

	slots, _ := GenerateSlots(SlotQuery{Windows: windows, Duration: 30 * time.Minute, Index: idx})
	if len(slots) != 6 {
		t.Errorf("expected freed intervals to be offered again, got %v", formatAll(slots))
	}
}

func TestGenerateSlots_StepGrid(t *testing.T) {
	windows, _ := WindowsFor(monday, morningSchedule())
	idx := NewCalendarIndex([]models.Appointment{
		{StartTime: at(10, 0), EndTime: at(10, 30), Status: string(StatusConfirmed)},
	})

	slots, err := GenerateSlots(SlotQuery{
		Windows:  windows,
		Duration: 30 * time.Minute,
		Step:     15 * time.Minute,
		Index:    idx,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := formatAll(slots)
	excluded := map[string]bool{"09:45:00": true, "10:00:00": true, "10:15:00": true}
	for _, s := range got {
		if excluded[s] {
			t.Errorf("slot %s overlaps the 10:00-10:30 booking", s)
		}
	}
	// 09:00..11:30 on a 15 minute grid is 11 candidates, minus 3 overlapping.
	if len(got) != 8 {
		t.Errorf("expected 8 slots, got %d: %v", len(got), got)
	}
	if got[len(got)-1] != "11:30:00" {
		t.Errorf("last slot should end exactly at window end, got %s", got[len(got)-1])
	}
}

func TestGenerateSlots_MultipleWindowsAscending(t *testing.T) {
	schedule := []models.PractitionerSchedule{
		{Weekday: int(time.Monday), StartTime: "14:00", EndTime: "15:00"},
		{Weekday: int(time.Monday), StartTime: "09:00", EndTime: "10:00"},
		{Weekday: int(time.Tuesday), StartTime: "09:00", EndTime: "17:00"},
	}
	windows, err := WindowsFor(monday, schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 monday windows, got %d", len(windows))
	}

	slots, _ := GenerateSlots(SlotQuery{Windows: windows, Duration: 30 * time.Minute})
	want := []string{"09:00:00", "09:30:00", "14:00:00", "14:30:00"}
	if got := formatAll(slots); !equalStrings(got, want) {
		t.Errorf("slots = %v, want %v", got, want)
	}
}

func TestGenerateSlots_NotBefore(t *testing.T) {
	windows, _ := WindowsFor(monday, morningSchedule())

	slots, _ := GenerateSlots(SlotQuery{
		Windows:   windows,
		Duration:  30 * time.Minute,
		NotBefore: at(10, 10),
	})
	want := []string{"10:30:00", "11:00:00", "11:30:00"}
	if got := formatAll(slots); !equalStrings(got, want) {
		t.Errorf("slots = %v, want %v", got, want)
	}
}

func TestGenerateSlots_NoWorkingHours(t *testing.T) {
	windows, err := WindowsFor(monday.AddDate(0, 0, 1), morningSchedule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slots, err := GenerateSlots(SlotQuery{Windows: windows, Duration: 30 * time.Minute})
	if err != nil {
		t.Fatalf("expected empty result, got error %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", slots)
	}
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Minute} {
		if _, err := GenerateSlots(SlotQuery{Duration: d}); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("duration %v: expected ErrInvalidConfiguration, got %v", d, err)
		}
	}
}

func TestGenerateSlots_DurationLongerThanWindow(t *testing.T) {
	windows, _ := WindowsFor(monday, morningSchedule())
	slots, err := GenerateSlots(SlotQuery{Windows: windows, Duration: 4 * time.Hour})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots, got %v", formatAll(slots))
	}
}

func TestGeneratedSlotsNeverOverlapOnceBooked(t *testing.T) {
	windows, _ := WindowsFor(monday, morningSchedule())
	d := 45 * time.Minute

	slots, _ := GenerateSlots(SlotQuery{Windows: windows, Duration: d})

	idx := NewCalendarIndex(nil)
	for _, s := range slots {
		if err := idx.Insert(Interval{Start: s, End: s.Add(d)}); err != nil {
			t.Fatalf("slot %s overlaps a previously generated slot: %v", FormatClock(s), err)
		}
	}
}

func TestWindowsFor_InvalidSchedule(t *testing.T) {
	cases := [][]models.PractitionerSchedule{
		{{Weekday: int(time.Monday), StartTime: "nine", EndTime: "12:00"}},
		{{Weekday: int(time.Monday), StartTime: "12:00", EndTime: "09:00"}},
	}
	for _, schedule := range cases {
		if _, err := WindowsFor(monday, schedule); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("expected ErrInvalidConfiguration for %+v, got %v", schedule, err)
		}
	}
}

func TestFitsSchedule(t *testing.T) {
	windows, _ := WindowsFor(monday, morningSchedule())

	if !FitsSchedule(windows, Interval{Start: at(11, 30), End: at(12, 0)}) {
		t.Error("interval ending at window end should fit")
	}
	if FitsSchedule(windows, Interval{Start: at(11, 45), End: at(12, 15)}) {
		t.Error("interval past window end should not fit")
	}
	if FitsSchedule(windows, Interval{Start: at(8, 45), End: at(9, 15)}) {
		t.Error("interval before window start should not fit")
	}
}
