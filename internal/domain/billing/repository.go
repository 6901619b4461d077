package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// GetEncounter loads the encounter with prescriptions and services.
	GetEncounter(
		ctx context.Context,
		id string,
	) (*models.PatientEncounter, error)

	// ConsultationFee returns zero for an unknown practitioner.
	ConsultationFee(
		ctx context.Context,
		practitionerID string,
	) (decimal.Decimal, error)

	ItemRates(
		ctx context.Context,
		itemIDs []string,
	) (map[string]decimal.Decimal, error)

	// SaveBill persists the totals and per-service costs together.
	SaveBill(
		ctx context.Context,
		enc *models.PatientEncounter,
	) error

	// SaveSummary overwrites the encounter's AI summary.
	SaveSummary(
		ctx context.Context,
		encounterID string,
		summary string,
	) error

	// RecordPayment inserts payment, links it to the encounter and marks the
	// encounter paid, all or nothing. Returns ErrAlreadyPaid if the encounter
	// was paid concurrently.
	RecordPayment(
		ctx context.Context,
		encounterID string,
		payment *models.EncounterPayment,
	) error
}
