package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID            string          `gorm:"primaryKey;size:100" json:"id"`
	ItemName      string          `gorm:"size:140" json:"item_name"`
	ValuationRate decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"valuation_rate"`
}

type PatientEncounter struct {
	ID string `gorm:"primaryKey;size:40" json:"id"`

	PatientID      string `gorm:"size:40;index" json:"patient"`
	PractitionerID string `gorm:"size:40;index" json:"practitioner"`

	Prescriptions     []Prescription     `gorm:"foreignKey:EncounterID" json:"prescriptions"`
	ServicesPerformed []PerformedService `gorm:"foreignKey:EncounterID" json:"services_performed"`

	TotalConsultationFee decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"total_consultation_fee"`
	TotalMedicineCost    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"total_medicine_cost"`
	TotalServiceCost     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"total_service_cost"`
	GrandTotal           decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"grand_total"`

	PaymentStatus string `gorm:"size:20;default:'Pending'" json:"payment_status"`
	PaymentRecord string `gorm:"size:40" json:"payment_record"`

	ClinicalNotes string `gorm:"type:text" json:"clinical_notes"`
	AISummary     string `gorm:"type:text" json:"ai_summary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Prescription struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	EncounterID string `gorm:"size:40;index" json:"encounter"`
	MedicineID  string `gorm:"size:100" json:"medicine"`
}

type PerformedService struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	EncounterID   string          `gorm:"size:40;index" json:"encounter"`
	ServiceItemID string          `gorm:"size:100" json:"service_item"`
	Cost          decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"cost"`
}

type EncounterPayment struct {
	ID            string          `gorm:"primaryKey;size:40" json:"id"`
	EncounterID   string          `gorm:"size:40;uniqueIndex" json:"patient_encounter"`
	PatientID     string          `gorm:"size:40" json:"patient"`
	PaymentDate   time.Time       `json:"payment_date"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(12,2)" json:"amount_paid"`
	ModeOfPayment string          `gorm:"size:30" json:"mode_of_payment"`

	CreatedAt time.Time `json:"created_at"`
}
