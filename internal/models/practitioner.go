package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Practitioner struct {
	ID              string          `gorm:"primaryKey;size:40" json:"id"`
	FullName        string          `gorm:"size:140;not null" json:"full_name"`
	Specialization  string          `gorm:"size:100" json:"specialization"`
	ConsultationFee decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"consultation_fee"`

	Schedule []PractitionerSchedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"availability_schedule"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PractitionerSchedule is one working-hour window. A weekday may carry
// several windows (e.g. morning and afternoon shifts).
type PractitionerSchedule struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	PractitionerID string `gorm:"size:40;index" json:"practitioner"`

	Weekday   int    `json:"weekday"`
	StartTime string `gorm:"size:8" json:"start_time"`
	EndTime   string `gorm:"size:8" json:"end_time"`
}
