package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

func (r *BillingGormRepository) GetEncounter(
	ctx context.Context,
	id string,
) (*models.PatientEncounter, error) {

	var enc models.PatientEncounter
	if err := r.db.WithContext(ctx).
		Preload("Prescriptions").
		Preload("ServicesPerformed").
		First(&enc, "id = ?", id).Error; err != nil {
		return nil, notFound(err, billing.ErrEncounterNotFound)
	}
	return &enc, nil
}

func (r *BillingGormRepository) ConsultationFee(
	ctx context.Context,
	practitionerID string,
) (decimal.Decimal, error) {

	var p models.Practitioner
	err := r.db.WithContext(ctx).
		Select("id", "consultation_fee").
		First(&p, "id = ?", practitionerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return p.ConsultationFee, nil
}

func (r *BillingGormRepository) ItemRates(
	ctx context.Context,
	itemIDs []string,
) (map[string]decimal.Decimal, error) {

	rates := make(map[string]decimal.Decimal, len(itemIDs))
	if len(itemIDs) == 0 {
		return rates, nil
	}

	var items []models.Item
	if err := r.db.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Find(&items).Error; err != nil {
		return nil, err
	}

	for _, it := range items {
		rates[it.ID] = it.ValuationRate
	}
	return rates, nil
}

func (r *BillingGormRepository) SaveBill(
	ctx context.Context,
	enc *models.PatientEncounter,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range enc.ServicesPerformed {
			// cost only; the row's modified timestamp is left alone
			if err := tx.Model(&models.PerformedService{}).
				Where("id = ?", s.ID).
				UpdateColumn("cost", s.Cost).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.PatientEncounter{}).
			Where("id = ?", enc.ID).
			Updates(map[string]any{
				"total_consultation_fee": enc.TotalConsultationFee,
				"total_medicine_cost":    enc.TotalMedicineCost,
				"total_service_cost":     enc.TotalServiceCost,
				"grand_total":            enc.GrandTotal,
			}).Error
	})
}

func (r *BillingGormRepository) SaveSummary(
	ctx context.Context,
	encounterID string,
	summary string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.PatientEncounter{}).
		Where("id = ?", encounterID).
		UpdateColumn("ai_summary", summary)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return billing.ErrEncounterNotFound
	}
	return nil
}

func (r *BillingGormRepository) RecordPayment(
	ctx context.Context,
	encounterID string,
	payment *models.EncounterPayment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var enc models.PatientEncounter
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&enc, "id = ?", encounterID).Error; err != nil {
			return notFound(err, billing.ErrEncounterNotFound)
		}

		if err := billing.CanPay(&enc); err != nil {
			return err
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return tx.Model(&models.PatientEncounter{}).
			Where("id = ?", encounterID).
			Updates(map[string]any{
				"payment_status": billing.PaymentPaid,
				"payment_record": payment.ID,
			}).Error
	})
}

// Compile-time check
var _ billing.Repository = (*BillingGormRepository)(nil)
