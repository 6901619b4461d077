package models

import "time"

type AppointmentType struct {
	ID                  string `gorm:"primaryKey;size:100" json:"type_name"`
	DefaultDurationMins int    `json:"default_duration_mins"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
