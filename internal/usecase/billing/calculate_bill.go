package billing

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
)

// Archiver keeps a copy of every computed bill.
type Archiver interface {
	Archive(ctx context.Context, encounterID string, snapshot any) error
}

type billSnapshot struct {
	EncounterID    string `json:"encounter"`
	PatientID      string `json:"patient"`
	PractitionerID string `json:"practitioner"`
	domain.Bill
}

type CalculateEncounterBill struct {
	repo     domain.Repository
	archiver Archiver
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewCalculateEncounterBill(
	repo domain.Repository,
	archiver Archiver,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CalculateEncounterBill {
	return &CalculateEncounterBill{
		repo:     repo,
		archiver: archiver,
		audit:    audit,
		log:      log,
	}
}

func (uc *CalculateEncounterBill) Execute(
	ctx context.Context,
	encounterID string,
) (*domain.Bill, error) {

	enc, err := uc.repo.GetEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}

	fee, err := uc.repo.ConsultationFee(ctx, enc.PractitionerID)
	if err != nil {
		return nil, err
	}

	rates, err := uc.repo.ItemRates(ctx, domain.ItemIDs(enc))
	if err != nil {
		return nil, err
	}

	bill := domain.Compute(enc, fee, rates)
	bill.Apply(enc)

	if err := uc.repo.SaveBill(ctx, enc); err != nil {
		return nil, err
	}

	snapshot := billSnapshot{
		EncounterID:    enc.ID,
		PatientID:      enc.PatientID,
		PractitionerID: enc.PractitionerID,
		Bill:           bill,
	}
	if err := uc.archiver.Archive(ctx, enc.ID, snapshot); err != nil {
		uc.log.Warn("bill archive failed",
			zap.String("encounter", enc.ID),
			zap.Error(err),
		)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "encounter_billed",
		Entity:   "patient_encounter",
		EntityID: enc.ID,
		Metadata: map[string]string{"grand_total": bill.GrandTotal.StringFixed(2)},
	})

	return &bill, nil
}
