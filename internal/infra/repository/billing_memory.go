package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type BillingMemoryRepository struct {
	mu sync.Mutex

	encounters    map[string]models.PatientEncounter
	practitioners map[string]decimal.Decimal
	items         map[string]decimal.Decimal
	payments      map[string]models.EncounterPayment
}

func NewBillingMemoryRepository() *BillingMemoryRepository {
	return &BillingMemoryRepository{
		encounters:    make(map[string]models.PatientEncounter),
		practitioners: make(map[string]decimal.Decimal),
		items:         make(map[string]decimal.Decimal),
		payments:      make(map[string]models.EncounterPayment),
	}
}

func (r *BillingMemoryRepository) PutEncounter(enc models.PatientEncounter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encounters[enc.ID] = cloneEncounter(enc)
}

func (r *BillingMemoryRepository) PutConsultationFee(practitionerID string, fee decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.practitioners[practitionerID] = fee
}

func (r *BillingMemoryRepository) PutItem(item models.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item.ValuationRate
}

func (r *BillingMemoryRepository) Payment(id string) (models.EncounterPayment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	return p, ok
}

func (r *BillingMemoryRepository) GetEncounter(
	_ context.Context,
	id string,
) (*models.PatientEncounter, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	enc, ok := r.encounters[id]
	if !ok {
		return nil, billing.ErrEncounterNotFound
	}
	cp := cloneEncounter(enc)
	return &cp, nil
}

func (r *BillingMemoryRepository) ConsultationFee(
	_ context.Context,
	practitionerID string,
) (decimal.Decimal, error) {

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.practitioners[practitionerID], nil
}

func (r *BillingMemoryRepository) ItemRates(
	_ context.Context,
	itemIDs []string,
) (map[string]decimal.Decimal, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	rates := make(map[string]decimal.Decimal, len(itemIDs))
	for _, id := range itemIDs {
		if rate, ok := r.items[id]; ok {
			rates[id] = rate
		}
	}
	return rates, nil
}

func (r *BillingMemoryRepository) SaveBill(
	_ context.Context,
	enc *models.PatientEncounter,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.encounters[enc.ID]; !ok {
		return billing.ErrEncounterNotFound
	}
	r.encounters[enc.ID] = cloneEncounter(*enc)
	return nil
}

func (r *BillingMemoryRepository) SaveSummary(
	_ context.Context,
	encounterID string,
	summary string,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	enc, ok := r.encounters[encounterID]
	if !ok {
		return billing.ErrEncounterNotFound
	}
	enc.AISummary = summary
	r.encounters[encounterID] = enc
	return nil
}

func (r *BillingMemoryRepository) RecordPayment(
	_ context.Context,
	encounterID string,
	payment *models.EncounterPayment,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	enc, ok := r.encounters[encounterID]
	if !ok {
		return billing.ErrEncounterNotFound
	}
	if err := billing.CanPay(&enc); err != nil {
		return err
	}

	r.payments[payment.ID] = *payment
	enc.PaymentStatus = billing.PaymentPaid
	enc.PaymentRecord = payment.ID
	r.encounters[encounterID] = enc
	return nil
}

func cloneEncounter(enc models.PatientEncounter) models.PatientEncounter {
	enc.Prescriptions = slices.Clone(enc.Prescriptions)
	enc.ServicesPerformed = slices.Clone(enc.ServicesPerformed)
	return enc
}

// Compile-time check
var _ billing.Repository = (*BillingMemoryRepository)(nil)
