package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

// CompletePastAppointments moves every active appointment whose end time
// has passed to Completed.
type CompletePastAppointments struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCompletePastAppointments(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CompletePastAppointments {
	return &CompletePastAppointments{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// Execute returns how many appointments were completed. A record that
// fails to update is logged and skipped.
func (uc *CompletePastAppointments) Execute(
	ctx context.Context,
	now time.Time,
) (int, error) {

	elapsed, err := uc.repo.ListElapsedActive(ctx, now)
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range elapsed {
		ap := &elapsed[i]

		if err := domain.CompleteElapsed(ap, now); err != nil {
			uc.log.Warn("skip appointment in status sweep",
				zap.String("appointment", ap.ID),
				zap.String("status", ap.Status),
				zap.Error(err),
			)
			continue
		}

		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			uc.log.Error("failed to complete appointment",
				zap.String("appointment", ap.ID),
				zap.Error(err),
			)
			continue
		}

		uc.audit.Dispatch(audit.Event{
			Action:   "appointment_completed",
			Entity:   "appointment",
			EntityID: ap.ID,
		})
		completed++
	}

	if completed > 0 {
		uc.log.Info("status sweep completed appointments", zap.Int("count", completed))
	}
	return completed, nil
}
