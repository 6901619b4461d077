package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestUpdateStatus_FollowsTransitions(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00")
	uc := NewUpdateStatus(f.repo, f.audit, "UTC")

	for _, next := range []string{"Confirmed", "Checked-in", "Completed"} {
		got, err := uc.Execute(context.Background(), ap.ID, next, nil)
		if err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
		if got.Status != next {
			t.Fatalf("expected %s, got %s", next, got.Status)
		}
	}

	stored, _ := f.repo.GetAppointment(context.Background(), ap.ID)
	if stored.CompletedAt == nil {
		t.Errorf("expected completed_at to be stamped")
	}
}

func TestUpdateStatus_RejectsIllegal(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00")
	uc := NewUpdateStatus(f.repo, f.audit, "UTC")

	if _, err := uc.Execute(context.Background(), ap.ID, "Completed", nil); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("Booked -> Completed should be invalid, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), ap.ID, "Paused", nil); err == nil {
		t.Errorf("unknown status should fail")
	}
	if _, err := uc.Execute(context.Background(), "APT-NOPE", "Confirmed", nil); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCancel_Twice(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, "09:00")
	uc := NewCancelAppointment(f.repo, f.audit, "UTC")

	if _, err := uc.Execute(context.Background(), ap.ID, nil); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if _, err := uc.Execute(context.Background(), ap.ID, nil); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("second cancel should be invalid_state, got %v", err)
	}
}

func TestCompletePastAppointments(t *testing.T) {
	f := newFixture(t)

	day := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	seed := []models.Appointment{
		{ID: "APT-A", PractitionerID: "PR001", PatientID: "PAT-001", StartTime: day, EndTime: day.Add(30 * time.Minute), Status: "Booked"},
		{ID: "APT-B", PractitionerID: "PR001", PatientID: "PAT-001", StartTime: day.Add(time.Hour), EndTime: day.Add(90 * time.Minute), Status: "Checked-in"},
		{ID: "APT-C", PractitionerID: "PR001", PatientID: "PAT-001", StartTime: day.Add(2 * time.Hour), EndTime: day.Add(150 * time.Minute), Status: "Cancelled"},
		{ID: "APT-D", PractitionerID: "PR001", PatientID: "PAT-001", StartTime: fixedNow.Add(24 * time.Hour), EndTime: fixedNow.Add(25 * time.Hour), Status: "Booked"},
	}
	for _, ap := range seed {
		f.repo.PutAppointment(ap)
	}

	n, err := NewCompletePastAppointments(f.repo, f.audit, zap.NewNop()).Execute(context.Background(), fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 completed, got %d", n)
	}

	want := map[string]string{
		"APT-A": "Completed",
		"APT-B": "Completed",
		"APT-C": "Cancelled",
		"APT-D": "Booked",
	}
	for id, status := range want {
		ap, _ := f.repo.GetAppointment(context.Background(), id)
		if ap.Status != status {
			t.Errorf("%s: expected %s, got %s", id, status, ap.Status)
		}
	}
}

func TestListAppointmentsByDate(t *testing.T) {
	f := newFixture(t)
	f.book(t, "10:00")
	f.book(t, "09:00")

	list, err := NewListAppointmentsByDate(f.repo, "UTC").Execute(context.Background(), "PR001", bookingDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(list))
	}
	if !list[0].StartTime.Before(list[1].StartTime) {
		t.Errorf("expected ascending order")
	}
	if list[0].PatientName != "John Doe" || list[0].PractitionerName != "Dr. Ana Costa" {
		t.Errorf("expected names attached, got %+v", list[0])
	}
}
