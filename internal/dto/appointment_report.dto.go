package dto

import "github.com/shopspring/decimal"

type AppointmentReportRowDTO struct {
	AppointmentID   string          `json:"appointment_id"`
	AppointmentDate string          `json:"appointment_date"`
	StartTime       string          `json:"start_time"`
	Patient         string          `json:"patient"`
	Practitioner    string          `json:"practitioner"`
	AppointmentType string          `json:"appointment_type"`
	Status          string          `json:"status"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	PaymentStatus   string          `json:"payment_status"`
}
