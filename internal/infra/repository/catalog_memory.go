package repository

import (
	"context"
	"sort"
	"strings"

	appointment "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// CatalogMemoryRepository writes reference data into the in-memory
// appointment and billing stores.
type CatalogMemoryRepository struct {
	appointments *AppointmentMemoryRepository
	billing      *BillingMemoryRepository
}

func NewCatalogMemoryRepository(
	appointments *AppointmentMemoryRepository,
	billing *BillingMemoryRepository,
) *CatalogMemoryRepository {
	return &CatalogMemoryRepository{
		appointments: appointments,
		billing:      billing,
	}
}

func (r *CatalogMemoryRepository) SavePractitioner(
	_ context.Context,
	p *models.Practitioner,
) error {

	a := r.appointments
	a.mu.Lock()
	if existing, ok := a.practitioners[p.ID]; ok {
		p.Schedule = existing.Schedule
	}
	a.practitioners[p.ID] = *p
	a.mu.Unlock()

	r.billing.PutConsultationFee(p.ID, p.ConsultationFee)
	return nil
}

func (r *CatalogMemoryRepository) ReplaceSchedule(
	_ context.Context,
	practitionerID string,
	windows []models.PractitionerSchedule,
) error {

	a := r.appointments
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.practitioners[practitionerID]
	if !ok {
		return appointment.ErrPractitionerNotFound
	}

	p.Schedule = make([]models.PractitionerSchedule, len(windows))
	for i, w := range windows {
		w.ID = uint(i + 1)
		w.PractitionerID = practitionerID
		p.Schedule[i] = w
	}
	a.practitioners[practitionerID] = p
	return nil
}

func (r *CatalogMemoryRepository) CreateAppointmentType(
	_ context.Context,
	at *models.AppointmentType,
) error {

	a := r.appointments
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.types[at.ID]; ok {
		return catalog.ErrAlreadyExists
	}
	a.types[at.ID] = *at
	return nil
}

func (r *CatalogMemoryRepository) CreatePatient(
	_ context.Context,
	p *models.Patient,
) error {

	a := r.appointments
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.patients[p.ID]; ok {
		return catalog.ErrAlreadyExists
	}
	a.patients[p.ID] = *p
	return nil
}

func (r *CatalogMemoryRepository) ListPatients(
	_ context.Context,
	query string,
) ([]models.Patient, error) {

	a := r.appointments
	a.mu.RLock()
	defer a.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))

	out := []models.Patient{}
	for _, p := range a.patients {
		if query == "" ||
			strings.Contains(strings.ToLower(p.FullName), query) ||
			strings.Contains(strings.ToLower(p.Email), query) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *CatalogMemoryRepository) SaveItem(
	_ context.Context,
	item *models.Item,
) error {

	r.billing.PutItem(*item)
	return nil
}

func (r *CatalogMemoryRepository) CreateEncounter(
	_ context.Context,
	enc *models.PatientEncounter,
) error {

	b := r.billing
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.encounters[enc.ID]; ok {
		return catalog.ErrAlreadyExists
	}
	if enc.PaymentStatus == "" {
		enc.PaymentStatus = billing.PaymentPending
	}
	b.encounters[enc.ID] = cloneEncounter(*enc)
	return nil
}

var _ catalog.Repository = (*CatalogMemoryRepository)(nil)
