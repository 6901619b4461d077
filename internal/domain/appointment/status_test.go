package appointment

import (
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusBooked, StatusConfirmed, true},
		{StatusBooked, StatusCancelled, true},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusCheckedIn, StatusCompleted, true},
		{StatusCheckedIn, StatusCancelled, false},
		{StatusBooked, StatusCompleted, false},
		{StatusCancelled, StatusBooked, false},
		{StatusCompleted, StatusNoShow, false},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidState) {
			t.Errorf("%s -> %s: expected ErrInvalidState, got %v", tc.from, tc.to, err)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if st, err := ParseStatus("Checked-in"); err != nil || st != StatusCheckedIn {
		t.Errorf("ParseStatus(Checked-in) = %q, %v", st, err)
	}
	if _, err := ParseStatus("Lost"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestCancelAndComplete(t *testing.T) {
	now := at(12, 0)

	ap := &models.Appointment{Status: string(StatusBooked), EndTime: at(10, 30)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
		t.Errorf("appointment not cancelled: %+v", ap)
	}
	if err := Cancel(ap, now); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second cancel should fail, got %v", err)
	}

	elapsed := &models.Appointment{Status: string(StatusConfirmed), EndTime: at(10, 30)}
	if err := CompleteElapsed(elapsed, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed.Status != string(StatusCompleted) || elapsed.CompletedAt == nil {
		t.Errorf("appointment not completed: %+v", elapsed)
	}

	future := &models.Appointment{Status: string(StatusBooked), EndTime: now.Add(time.Hour)}
	if err := CompleteElapsed(future, now); !errors.Is(err, ErrInvalidState) {
		t.Errorf("future appointment should not complete, got %v", err)
	}
}
