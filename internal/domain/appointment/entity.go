package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Transition moves ap to next, stamping the matching timestamp.
func Transition(ap *models.Appointment, next Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}

	ap.Status = string(next)
	switch next {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

// CompleteElapsed closes an appointment whose end time has passed,
// regardless of whether it was ever checked in.
func CompleteElapsed(ap *models.Appointment, now time.Time) error {
	if !Status(ap.Status).IsActive() || ap.EndTime.After(now) {
		return ErrInvalidState
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}
