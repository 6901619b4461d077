package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const bookingDate = "2025-11-17" // Monday

// Sunday morning before the booking date.
var fixedNow = time.Date(2025, 11, 16, 8, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *repository.AppointmentMemoryRepository
	durations *domain.DurationResolver
	audit     *audit.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := repository.NewAppointmentMemoryRepository()
	repo.PutPractitioner(models.Practitioner{
		ID:              "PR001",
		FullName:        "Dr. Ana Costa",
		ConsultationFee: decimal.NewFromInt(100),
		Schedule: []models.PractitionerSchedule{
			{PractitionerID: "PR001", Weekday: int(time.Monday), StartTime: "09:00:00", EndTime: "12:00:00"},
		},
	})
	repo.PutAppointmentType(models.AppointmentType{ID: "Consultation", DefaultDurationMins: 30})
	repo.PutAppointmentType(models.AppointmentType{ID: "Broken", DefaultDurationMins: 0})
	repo.PutPatient(models.Patient{ID: "PAT-001", FullName: "John Doe", Email: "john@example.com"})

	d := audit.NewDispatcher(audit.NewZapSink(zap.NewNop()), zap.NewNop())
	t.Cleanup(d.Close)

	return &fixture{
		repo:      repo,
		durations: domain.NewDurationResolver(repo, nil),
		audit:     d,
	}
}

func (f *fixture) availability() *GetAvailability {
	uc := NewGetAvailability(f.repo, f.durations, "UTC", 0)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (f *fixture) booking() *ConfirmBooking {
	uc := NewConfirmBooking(f.repo, f.durations, lock.NewKeyedMutex(), f.audit, "UTC")
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (f *fixture) book(t *testing.T, start string) *models.Appointment {
	t.Helper()

	ap, err := f.booking().Execute(context.Background(), ConfirmBookingInput{
		PractitionerID:  "PR001",
		PatientID:       "PAT-001",
		AppointmentType: "Consultation",
		Date:            bookingDate,
		StartTime:       start,
	})
	if err != nil {
		t.Fatalf("book %s: %v", start, err)
	}
	return ap
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
