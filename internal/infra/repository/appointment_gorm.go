package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound maps gorm.ErrRecordNotFound to the domain error.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// --------------------------------------------------
// Reference data
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPractitioner(
	ctx context.Context,
	id string,
) (*models.Practitioner, error) {

	var p models.Practitioner
	if err := r.db.WithContext(ctx).
		Preload("Schedule").
		First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrPractitionerNotFound)
	}
	return &p, nil
}

func (r *AppointmentGormRepository) ListPractitioners(
	ctx context.Context,
) ([]models.Practitioner, error) {

	var out []models.Practitioner
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) GetAppointmentType(
	ctx context.Context,
	id string,
) (*models.AppointmentType, error) {

	var at models.AppointmentType
	if err := r.db.WithContext(ctx).
		First(&at, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrUnknownAppointmentType)
	}
	return &at, nil
}

func (r *AppointmentGormRepository) ListAppointmentTypes(
	ctx context.Context,
) ([]models.AppointmentType, error) {

	var out []models.AppointmentType
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPatient(
	ctx context.Context,
	id string,
) (*models.Patient, error) {

	var p models.Patient
	if err := r.db.WithContext(ctx).
		First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrPatientNotFound)
	}
	return &p, nil
}

func (r *AppointmentGormRepository) FindPatient(
	ctx context.Context,
	q domain.PatientQuery,
) (*models.Patient, error) {

	lookups := []struct {
		where string
		value string
	}{
		{"full_name = ?", q.FullName},
		{"LOWER(email) = ?", strings.ToLower(q.Email)},
		{"LOWER(owner) = ?", strings.ToLower(q.Owner)},
	}

	for _, l := range lookups {
		if l.value == "" {
			continue
		}

		var p models.Patient
		err := r.db.WithContext(ctx).
			Where(l.where, l.value).
			Order("id ASC").
			First(&p).Error
		if err == nil {
			return &p, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, domain.ErrPatientNotFound
}

// --------------------------------------------------
// Calendar / booking
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	practitionerID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"practitioner_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			practitionerID,
			domain.StatusNames(domain.FreeingStatuses),
			end,
			start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Book serialises on a transaction-scoped advisory lock for the
// practitioner day, re-checks the overlap and inserts. The exclusion
// constraint created by db.Migrate backs the check across days.
func (r *AppointmentGormRepository) Book(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		key := domain.BookingKey(ap.PractitionerID, ap.StartTime)
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"practitioner_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.PractitionerID,
				domain.StatusNames(domain.FreeingStatuses),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return domain.ErrSlotNoLongerAvailable
		}

		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return domain.ErrSlotNoLongerAvailable
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListElapsedActive(
	ctx context.Context,
	now time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"status IN ? AND end_time < ?",
			domain.StatusNames(domain.ActiveStatuses),
			now,
		).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	practitionerID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Practitioner").
		Where(
			"practitioner_id = ? AND start_time >= ? AND start_time < ?",
			practitionerID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) LatestAppointmentForPatient(
	ctx context.Context,
	patientID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		First(&ap).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpcomingAppointmentsForPatient(
	ctx context.Context,
	patientID string,
	from time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("patient_id = ? AND start_time >= ?", patientID, from).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ReportAppointments(
	ctx context.Context,
	f domain.ReportFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Practitioner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name", "consultation_fee")
		})

	if f.PractitionerID != "" {
		q = q.Where("practitioner_id = ?", f.PractitionerID)
	}
	if f.AppointmentTypeID != "" {
		q = q.Where("appointment_type_id = ?", f.AppointmentTypeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time < ?", *f.To)
	}

	var apps []models.Appointment
	if err := q.Order("start_time DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
