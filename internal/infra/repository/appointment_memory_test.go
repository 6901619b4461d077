package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func slot(hour, minute int) (time.Time, time.Time) {
	start := time.Date(2025, 11, 17, hour, minute, 0, 0, time.UTC)
	return start, start.Add(30 * time.Minute)
}

func TestMemoryBook_RejectsOverlap(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	start, end := slot(10, 0)
	first := &models.Appointment{ID: "APT-1", PractitionerID: "PR001", StartTime: start, EndTime: end, Status: string(domain.StatusBooked)}
	if err := repo.Book(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start, end = slot(10, 15)
	second := &models.Appointment{ID: "APT-2", PractitionerID: "PR001", StartTime: start, EndTime: end, Status: string(domain.StatusBooked)}
	if err := repo.Book(ctx, second); !errors.Is(err, domain.ErrSlotNoLongerAvailable) {
		t.Fatalf("expected ErrSlotNoLongerAvailable, got %v", err)
	}

	other := &models.Appointment{ID: "APT-3", PractitionerID: "PR002", StartTime: start, EndTime: end, Status: string(domain.StatusBooked)}
	if err := repo.Book(ctx, other); err != nil {
		t.Fatalf("another practitioner should be free: %v", err)
	}
}

func TestMemoryBook_CancelledDoesNotBlock(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()

	start, end := slot(10, 0)
	repo.PutAppointment(models.Appointment{ID: "APT-1", PractitionerID: "PR001", StartTime: start, EndTime: end, Status: string(domain.StatusCancelled)})

	ap := &models.Appointment{ID: "APT-2", PractitionerID: "PR001", StartTime: start, EndTime: end, Status: string(domain.StatusBooked)}
	if err := repo.Book(ctx, ap); err != nil {
		t.Fatalf("cancelled appointment should not block: %v", err)
	}

	blocking, _ := repo.ListBlockingAppointments(ctx, "PR001", start.Add(-time.Hour), end.Add(time.Hour))
	if len(blocking) != 1 || blocking[0].ID != "APT-2" {
		t.Errorf("unexpected blocking appointments: %+v", blocking)
	}
}

func TestMemoryBook_ConcurrentSameSlot(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	ctx := context.Background()
	start, end := slot(9, 0)

	const workers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ap := &models.Appointment{
				ID:             fmt.Sprintf("APT-%d", i),
				PractitionerID: "PR001",
				StartTime:      start,
				EndTime:        end,
				Status:         string(domain.StatusBooked),
			}
			err := repo.Book(ctx, ap)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrSlotNoLongerAvailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 || conflicts != workers-1 {
		t.Errorf("succeeded=%d conflicts=%d, want 1 and %d", succeeded, conflicts, workers-1)
	}
}

func TestMemoryFindPatient_Order(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	repo.PutPatient(models.Patient{ID: "PAT-1", FullName: "Asha Rao", Email: "asha@example.com"})
	repo.PutPatient(models.Patient{ID: "PAT-2", FullName: "Ben Ode", Owner: "ben@example.com"})
	ctx := context.Background()

	p, err := repo.FindPatient(ctx, domain.PatientQuery{FullName: "Nobody", Email: "ASHA@example.com"})
	if err != nil || p.ID != "PAT-1" {
		t.Fatalf("expected email fallback to PAT-1, got %+v %v", p, err)
	}

	p, err = repo.FindPatient(ctx, domain.PatientQuery{Email: "ben@example.com", Owner: "ben@example.com"})
	if err != nil || p.ID != "PAT-2" {
		t.Fatalf("expected owner fallback to PAT-2, got %+v %v", p, err)
	}

	if _, err := repo.FindPatient(ctx, domain.PatientQuery{FullName: "Nobody"}); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestMemoryListElapsedActive(t *testing.T) {
	repo := NewAppointmentMemoryRepository()
	start, end := slot(9, 0)

	repo.PutAppointment(models.Appointment{ID: "A", StartTime: start, EndTime: end, Status: string(domain.StatusBooked)})
	repo.PutAppointment(models.Appointment{ID: "B", StartTime: start, EndTime: end, Status: string(domain.StatusCancelled)})
	repo.PutAppointment(models.Appointment{ID: "C", StartTime: end, EndTime: end.Add(time.Hour), Status: string(domain.StatusCheckedIn)})

	got, _ := repo.ListElapsedActive(context.Background(), end.Add(time.Minute))
	if len(got) != 1 || got[0].ID != "A" {
		t.Errorf("unexpected elapsed appointments: %+v", got)
	}
}
