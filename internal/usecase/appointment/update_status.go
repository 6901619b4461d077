package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID string,
	status string,
	userID *uint,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	previous := ap.Status
	if err := domain.Transition(ap, next, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{
			"from": previous,
			"to":   ap.Status,
		},
	})

	return ap, nil
}
