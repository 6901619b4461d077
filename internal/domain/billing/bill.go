package billing

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"

	ModeCash = "Cash"
)

// Bill is the breakdown written back onto an encounter.
type Bill struct {
	ConsultationFee decimal.Decimal `json:"total_consultation_fee"`
	MedicineCost    decimal.Decimal `json:"total_medicine_cost"`
	ServiceCost     decimal.Decimal `json:"total_service_cost"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
}

// Compute prices the encounter: consultation fee, plus the valuation rate
// of every prescribed medicine, plus the valuation rate of every performed
// service. Items missing from rates cost nothing. Each performed service
// gets its Cost set to the rate it was billed at.
func Compute(
	enc *models.PatientEncounter,
	consultationFee decimal.Decimal,
	rates map[string]decimal.Decimal,
) Bill {

	b := Bill{ConsultationFee: consultationFee}

	for _, p := range enc.Prescriptions {
		b.MedicineCost = b.MedicineCost.Add(rates[p.MedicineID])
	}

	for i := range enc.ServicesPerformed {
		cost := rates[enc.ServicesPerformed[i].ServiceItemID]
		enc.ServicesPerformed[i].Cost = cost
		b.ServiceCost = b.ServiceCost.Add(cost)
	}

	b.GrandTotal = b.ConsultationFee.Add(b.MedicineCost).Add(b.ServiceCost)
	return b
}

// Apply copies the bill totals onto the encounter.
func (b Bill) Apply(enc *models.PatientEncounter) {
	enc.TotalConsultationFee = b.ConsultationFee
	enc.TotalMedicineCost = b.MedicineCost
	enc.TotalServiceCost = b.ServiceCost
	enc.GrandTotal = b.GrandTotal
}

// ItemIDs lists every item referenced by the encounter.
func ItemIDs(enc *models.PatientEncounter) []string {
	seen := make(map[string]struct{})
	var ids []string

	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, p := range enc.Prescriptions {
		add(p.MedicineID)
	}
	for _, s := range enc.ServicesPerformed {
		add(s.ServiceItemID)
	}
	return ids
}

func CanPay(enc *models.PatientEncounter) error {
	if enc.PaymentStatus == PaymentPaid {
		return ErrAlreadyPaid
	}
	return nil
}
