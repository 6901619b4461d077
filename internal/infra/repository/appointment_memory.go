package repository

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// AppointmentMemoryRepository keeps everything in process. Used by the
// `--store=memory` dev server and by tests.
type AppointmentMemoryRepository struct {
	mu sync.RWMutex

	practitioners map[string]models.Practitioner
	types         map[string]models.AppointmentType
	patients      map[string]models.Patient
	appointments  map[string]models.Appointment
}

func NewAppointmentMemoryRepository() *AppointmentMemoryRepository {
	return &AppointmentMemoryRepository{
		practitioners: make(map[string]models.Practitioner),
		types:         make(map[string]models.AppointmentType),
		patients:      make(map[string]models.Patient),
		appointments:  make(map[string]models.Appointment),
	}
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *AppointmentMemoryRepository) PutPractitioner(p models.Practitioner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.practitioners[p.ID] = p
}

func (r *AppointmentMemoryRepository) PutAppointmentType(at models.AppointmentType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[at.ID] = at
}

func (r *AppointmentMemoryRepository) PutPatient(p models.Patient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.ID] = p
}

// PutAppointment stores ap without any overlap check.
func (r *AppointmentMemoryRepository) PutAppointment(ap models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[ap.ID] = ap
}

// --------------------------------------------------
// Reference data
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetPractitioner(
	_ context.Context,
	id string,
) (*models.Practitioner, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.practitioners[id]
	if !ok {
		return nil, domain.ErrPractitionerNotFound
	}
	return &p, nil
}

func (r *AppointmentMemoryRepository) ListPractitioners(
	_ context.Context,
) ([]models.Practitioner, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Practitioner, 0, len(r.practitioners))
	for _, p := range r.practitioners {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (r *AppointmentMemoryRepository) GetAppointmentType(
	_ context.Context,
	id string,
) (*models.AppointmentType, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	at, ok := r.types[id]
	if !ok {
		return nil, domain.ErrUnknownAppointmentType
	}
	return &at, nil
}

func (r *AppointmentMemoryRepository) ListAppointmentTypes(
	_ context.Context,
) ([]models.AppointmentType, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AppointmentType, 0, len(r.types))
	for _, at := range r.types {
		out = append(out, at)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

// --------------------------------------------------
// Patient
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetPatient(
	_ context.Context,
	id string,
) (*models.Patient, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	return &p, nil
}

func (r *AppointmentMemoryRepository) FindPatient(
	_ context.Context,
	q domain.PatientQuery,
) (*models.Patient, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	match := func(pred func(models.Patient) bool) (*models.Patient, bool) {
		ids := make([]string, 0, len(r.patients))
		for id := range r.patients {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if p := r.patients[id]; pred(p) {
				return &p, true
			}
		}
		return nil, false
	}

	if q.FullName != "" {
		if p, ok := match(func(p models.Patient) bool { return p.FullName == q.FullName }); ok {
			return p, nil
		}
	}
	if q.Email != "" {
		if p, ok := match(func(p models.Patient) bool { return strings.EqualFold(p.Email, q.Email) }); ok {
			return p, nil
		}
	}
	if q.Owner != "" {
		if p, ok := match(func(p models.Patient) bool { return strings.EqualFold(p.Owner, q.Owner) }); ok {
			return p, nil
		}
	}
	return nil, domain.ErrPatientNotFound
}

// --------------------------------------------------
// Calendar / booking
// --------------------------------------------------

func (r *AppointmentMemoryRepository) ListBlockingAppointments(
	_ context.Context,
	practitionerID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	window := domain.Interval{Start: start, End: end}
	return r.filterLocked(func(ap models.Appointment) bool {
		return ap.PractitionerID == practitionerID &&
			domain.Status(ap.Status).Blocks() &&
			window.Overlaps(domain.Interval{Start: ap.StartTime, End: ap.EndTime})
	}), nil
}

func (r *AppointmentMemoryRepository) Book(
	ctx context.Context,
	ap *models.Appointment,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	candidate := domain.Interval{Start: ap.StartTime, End: ap.EndTime}
	for _, existing := range r.appointments {
		if existing.PractitionerID != ap.PractitionerID || !domain.Status(existing.Status).Blocks() {
			continue
		}
		if candidate.Overlaps(domain.Interval{Start: existing.StartTime, End: existing.EndTime}) {
			return domain.ErrSlotNoLongerAvailable
		}
	}

	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	r.appointments[ap.ID] = *ap
	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentMemoryRepository) GetAppointment(
	_ context.Context,
	id string,
) (*models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &ap, nil
}

func (r *AppointmentMemoryRepository) UpdateAppointment(
	_ context.Context,
	ap *models.Appointment,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[ap.ID]; !ok {
		return domain.ErrAppointmentNotFound
	}
	ap.UpdatedAt = time.Now()
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *AppointmentMemoryRepository) ListElapsedActive(
	_ context.Context,
	now time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filterLocked(func(ap models.Appointment) bool {
		return domain.Status(ap.Status).IsActive() && ap.EndTime.Before(now)
	}), nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentMemoryRepository) ListAppointmentsForPeriod(
	_ context.Context,
	practitionerID string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filterLocked(func(ap models.Appointment) bool {
		return ap.PractitionerID == practitionerID &&
			!ap.StartTime.Before(start) && ap.StartTime.Before(end)
	}), nil
}

func (r *AppointmentMemoryRepository) LatestAppointmentForPatient(
	_ context.Context,
	patientID string,
) (*models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *models.Appointment
	for _, ap := range r.appointments {
		if ap.PatientID != patientID {
			continue
		}
		if latest == nil || ap.CreatedAt.After(latest.CreatedAt) {
			cp := ap
			latest = &cp
		}
	}
	if latest == nil {
		return nil, domain.ErrAppointmentNotFound
	}
	return latest, nil
}

func (r *AppointmentMemoryRepository) UpcomingAppointmentsForPatient(
	_ context.Context,
	patientID string,
	from time.Time,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filterLocked(func(ap models.Appointment) bool {
		return ap.PatientID == patientID && !ap.StartTime.Before(from)
	}), nil
}

func (r *AppointmentMemoryRepository) ReportAppointments(
	_ context.Context,
	f domain.ReportFilter,
) ([]models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.filterLocked(func(ap models.Appointment) bool {
		switch {
		case f.PractitionerID != "" && ap.PractitionerID != f.PractitionerID,
			f.AppointmentTypeID != "" && ap.AppointmentTypeID != f.AppointmentTypeID,
			f.Status != "" && ap.Status != f.Status,
			f.From != nil && ap.StartTime.Before(*f.From),
			f.To != nil && !ap.StartTime.Before(*f.To):
			return false
		}
		return true
	})
	slices.Reverse(out)
	return out, nil
}

// filterLocked returns matching appointments ordered by start time, with
// patient and practitioner attached.
// Caller holds r.mu.
func (r *AppointmentMemoryRepository) filterLocked(
	keep func(models.Appointment) bool,
) []models.Appointment {

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if keep(ap) {
			ap.Patient = r.patients[ap.PatientID]
			ap.Practitioner = r.practitioners[ap.PractitionerID]
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].StartTime.Before(out[b].StartTime)
	})
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentMemoryRepository)(nil)
