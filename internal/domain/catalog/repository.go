package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	appointment "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var (
	ErrAlreadyExists   = httperr.ErrBusiness("already_exists")
	ErrInvalidSchedule = httperr.ErrBusiness("invalid_schedule")
)

// Repository maintains the reference data the scheduler reads: practitioners
// and their hours, appointment types, patients, billable items, encounters.
type Repository interface {
	// SavePractitioner inserts or updates p without touching its schedule.
	SavePractitioner(
		ctx context.Context,
		p *models.Practitioner,
	) error

	// ReplaceSchedule swaps every window of the practitioner at once.
	ReplaceSchedule(
		ctx context.Context,
		practitionerID string,
		windows []models.PractitionerSchedule,
	) error

	// CreateAppointmentType returns ErrAlreadyExists for a known name.
	// Durations are immutable once created.
	CreateAppointmentType(
		ctx context.Context,
		at *models.AppointmentType,
	) error

	CreatePatient(
		ctx context.Context,
		p *models.Patient,
	) error

	// ListPatients filters by a case-insensitive name or email fragment.
	ListPatients(
		ctx context.Context,
		query string,
	) ([]models.Patient, error)

	SaveItem(
		ctx context.Context,
		item *models.Item,
	) error

	CreateEncounter(
		ctx context.Context,
		enc *models.PatientEncounter,
	) error
}

// NewID returns prefix + "-" + eight upper-case hex digits.
func NewID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

// ValidateSchedule checks every window parses and ends after it starts.
func ValidateSchedule(windows []models.PractitionerSchedule) error {
	for _, w := range windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			return fmt.Errorf("weekday %d: %w", w.Weekday, ErrInvalidSchedule)
		}

		start, err := appointment.ParseClock(w.StartTime)
		if err != nil {
			return fmt.Errorf("start %q: %w", w.StartTime, ErrInvalidSchedule)
		}
		end, err := appointment.ParseClock(w.EndTime)
		if err != nil {
			return fmt.Errorf("end %q: %w", w.EndTime, ErrInvalidSchedule)
		}
		if start.String() >= end.String() {
			return fmt.Errorf("%s-%s: %w", start, end, ErrInvalidSchedule)
		}
	}
	return nil
}
