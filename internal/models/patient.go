package models

import "time"

type Patient struct {
	ID            string `gorm:"primaryKey;size:40" json:"id"`
	FullName      string `gorm:"size:140;not null;index" json:"full_name"`
	Email         string `gorm:"size:140;index" json:"email"`
	ContactNumber string `gorm:"size:20" json:"contact_number"`

	// Owner is the email of the user account that registered the patient.
	Owner string `gorm:"size:140;index" json:"owner"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
