package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:40" json:"id"`

	PatientID string  `gorm:"size:40;index" json:"patient"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	PractitionerID string       `gorm:"size:40;index:idx_appointment_practitioner_start" json:"practitioner"`
	Practitioner   Practitioner `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	AppointmentTypeID string          `gorm:"size:100" json:"appointment_type"`
	AppointmentType   AppointmentType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	StartTime time.Time `gorm:"index:idx_appointment_practitioner_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status         string `gorm:"size:20;default:'Booked'" json:"status"`
	BookingChannel string `gorm:"size:30;default:'Front-desk'" json:"booking_channel"`
	PaymentStatus  string `gorm:"size:20;default:'Pending'" json:"payment_status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
