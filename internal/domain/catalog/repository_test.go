package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name    string
		windows []models.PractitionerSchedule
		ok      bool
	}{
		{"empty", nil, true},
		{"two shifts", []models.PractitionerSchedule{
			{Weekday: 1, StartTime: "09:00", EndTime: "12:00"},
			{Weekday: 1, StartTime: "14:00:00", EndTime: "18:00:00"},
		}, true},
		{"end before start", []models.PractitionerSchedule{{Weekday: 1, StartTime: "12:00", EndTime: "09:00"}}, false},
		{"zero length", []models.PractitionerSchedule{{Weekday: 1, StartTime: "09:00", EndTime: "09:00:00"}}, false},
		{"bad clock", []models.PractitionerSchedule{{Weekday: 1, StartTime: "9am", EndTime: "12:00"}}, false},
		{"bad weekday", []models.PractitionerSchedule{{Weekday: 7, StartTime: "09:00", EndTime: "12:00"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.windows)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidSchedule) {
				t.Fatalf("expected invalid_schedule, got %v", err)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	id := NewID("PAT")
	if !strings.HasPrefix(id, "PAT-") || len(id) != len("PAT-")+8 {
		t.Errorf("unexpected id %q", id)
	}
	if id == NewID("PAT") {
		t.Errorf("ids should differ")
	}
}
