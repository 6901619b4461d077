package billing

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ProcessMockPayment settles an encounter with a cash payment for its
// grand total. Nothing leaves the clinic's books.
type ProcessMockPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewProcessMockPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *ProcessMockPayment {
	return &ProcessMockPayment{
		repo:  repo,
		audit: audit,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

func NewPaymentID() string {
	return catalog.NewID("PAY")
}

// Execute returns the payment name.
func (uc *ProcessMockPayment) Execute(
	ctx context.Context,
	encounterID string,
	userID *uint,
) (string, error) {

	enc, err := uc.repo.GetEncounter(ctx, encounterID)
	if err != nil {
		return "", err
	}

	if err := domain.CanPay(enc); err != nil {
		return "", err
	}

	now := uc.now()
	payment := &models.EncounterPayment{
		ID:            NewPaymentID(),
		EncounterID:   enc.ID,
		PatientID:     enc.PatientID,
		PaymentDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		AmountPaid:    enc.GrandTotal,
		ModeOfPayment: domain.ModeCash,
	}

	if err := uc.repo.RecordPayment(ctx, enc.ID, payment); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "encounter_paid",
		Entity:   "patient_encounter",
		EntityID: enc.ID,
		Metadata: map[string]string{
			"payment": payment.ID,
			"amount":  payment.AmountPaid.StringFixed(2),
		},
	})

	return payment.ID, nil
}
