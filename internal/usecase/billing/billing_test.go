package billing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type recordingArchiver struct {
	keys []string
	err  error
}

func (a *recordingArchiver) Archive(_ context.Context, encounterID string, _ any) error {
	a.keys = append(a.keys, encounterID)
	return a.err
}

func seededRepo() *repository.BillingMemoryRepository {
	repo := repository.NewBillingMemoryRepository()
	repo.PutConsultationFee("PR001", decimal.NewFromInt(100))
	repo.PutItem(models.Item{ID: "MED-PARA", ItemName: "Paracetamol", ValuationRate: decimal.RequireFromString("12.50")})
	repo.PutItem(models.Item{ID: "SRV-ECG", ItemName: "ECG", ValuationRate: decimal.NewFromInt(40)})
	repo.PutEncounter(models.PatientEncounter{
		ID:             "ENC-001",
		PatientID:      "PAT-001",
		PractitionerID: "PR001",
		Prescriptions: []models.Prescription{
			{EncounterID: "ENC-001", MedicineID: "MED-PARA"},
			{EncounterID: "ENC-001", MedicineID: "MED-PARA"},
		},
		ServicesPerformed: []models.PerformedService{
			{EncounterID: "ENC-001", ServiceItemID: "SRV-ECG"},
		},
		PaymentStatus: domain.PaymentPending,
	})
	return repo
}

func newDispatcher(t *testing.T) *audit.Dispatcher {
	d := audit.NewDispatcher(audit.NewZapSink(zap.NewNop()), zap.NewNop())
	t.Cleanup(d.Close)
	return d
}

func TestCalculateEncounterBill(t *testing.T) {
	repo := seededRepo()
	archiver := &recordingArchiver{}
	uc := NewCalculateEncounterBill(repo, archiver, newDispatcher(t), zap.NewNop())

	bill, err := uc.Execute(context.Background(), "ENC-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bill.GrandTotal.Equal(decimal.NewFromInt(165)) {
		t.Errorf("expected grand total 165, got %s", bill.GrandTotal)
	}

	enc, _ := repo.GetEncounter(context.Background(), "ENC-001")
	if !enc.TotalMedicineCost.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected medicine cost 25, got %s", enc.TotalMedicineCost)
	}
	if !enc.ServicesPerformed[0].Cost.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected service cost written back, got %s", enc.ServicesPerformed[0].Cost)
	}
	if len(archiver.keys) != 1 || archiver.keys[0] != "ENC-001" {
		t.Errorf("expected one archived bill, got %v", archiver.keys)
	}
}

func TestCalculateEncounterBill_ArchiveFailureIsNotReturned(t *testing.T) {
	archiver := &recordingArchiver{err: errors.New("bucket unavailable")}
	uc := NewCalculateEncounterBill(seededRepo(), archiver, newDispatcher(t), zap.NewNop())

	if _, err := uc.Execute(context.Background(), "ENC-001"); err != nil {
		t.Fatalf("archive failure leaked: %v", err)
	}
}

func TestCalculateEncounterBill_NotFound(t *testing.T) {
	uc := NewCalculateEncounterBill(seededRepo(), &recordingArchiver{}, newDispatcher(t), zap.NewNop())

	if _, err := uc.Execute(context.Background(), "ENC-404"); !errors.Is(err, domain.ErrEncounterNotFound) {
		t.Errorf("expected encounter_not_found, got %v", err)
	}
}

func TestProcessMockPayment(t *testing.T) {
	repo := seededRepo()
	d := newDispatcher(t)

	if _, err := NewCalculateEncounterBill(repo, &recordingArchiver{}, d, zap.NewNop()).Execute(context.Background(), "ENC-001"); err != nil {
		t.Fatalf("bill: %v", err)
	}

	uc := NewProcessMockPayment(repo, d, "UTC")

	name, err := uc.Execute(context.Background(), "ENC-001", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(name, "PAY-") {
		t.Errorf("unexpected payment name %q", name)
	}

	payment, ok := repo.Payment(name)
	if !ok {
		t.Fatalf("payment %s not stored", name)
	}
	if payment.ModeOfPayment != domain.ModeCash || !payment.AmountPaid.Equal(decimal.NewFromInt(165)) {
		t.Errorf("unexpected payment %+v", payment)
	}

	enc, _ := repo.GetEncounter(context.Background(), "ENC-001")
	if enc.PaymentStatus != domain.PaymentPaid || enc.PaymentRecord != name {
		t.Errorf("encounter not marked paid: %+v", enc)
	}

	if _, err := uc.Execute(context.Background(), "ENC-001", nil); !errors.Is(err, domain.ErrAlreadyPaid) {
		t.Errorf("second payment should be already_paid, got %v", err)
	}
}
