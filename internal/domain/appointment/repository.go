package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// PatientQuery finds a patient by any of the set fields, tried in order:
// full name, email, owner.
type PatientQuery struct {
	FullName string
	Email    string
	Owner    string
}

// ReportFilter narrows the analytics listing. Empty fields and nil bounds
// match everything; From is inclusive, To exclusive.
type ReportFilter struct {
	PractitionerID    string
	AppointmentTypeID string
	Status            string
	From              *time.Time
	To                *time.Time
}

type Repository interface {
	// -------- Reference data --------
	GetPractitioner(
		ctx context.Context,
		id string,
	) (*models.Practitioner, error)

	ListPractitioners(
		ctx context.Context,
	) ([]models.Practitioner, error)

	GetAppointmentType(
		ctx context.Context,
		id string,
	) (*models.AppointmentType, error)

	ListAppointmentTypes(
		ctx context.Context,
	) ([]models.AppointmentType, error)

	// -------- Patient --------
	GetPatient(
		ctx context.Context,
		id string,
	) (*models.Patient, error)

	FindPatient(
		ctx context.Context,
		q PatientQuery,
	) (*models.Patient, error)

	// -------- Calendar (read side) --------
	ListBlockingAppointments(
		ctx context.Context,
		practitionerID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Booking (read-modify-write) --------

	// Book re-checks ap's interval against every blocking appointment of
	// the practitioner and inserts ap as one indivisible operation.
	// Returns ErrSlotNoLongerAvailable on overlap.
	Book(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListElapsedActive(
		ctx context.Context,
		now time.Time,
	) ([]models.Appointment, error)

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		practitionerID string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	LatestAppointmentForPatient(
		ctx context.Context,
		patientID string,
	) (*models.Appointment, error)

	UpcomingAppointmentsForPatient(
		ctx context.Context,
		patientID string,
		from time.Time,
	) ([]models.Appointment, error)

	// ReportAppointments returns matches newest first, practitioner attached.
	ReportAppointments(
		ctx context.Context,
		f ReportFilter,
	) ([]models.Appointment, error)
}
