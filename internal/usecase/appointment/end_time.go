package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

// FallbackDuration is used by CalculateEndTime when the appointment type
// cannot be resolved.
const FallbackDuration = 30 * time.Minute

type CalculateEndTime struct {
	durations *domain.DurationResolver
}

func NewCalculateEndTime(durations *domain.DurationResolver) *CalculateEndTime {
	return &CalculateEndTime{durations: durations}
}

// Execute returns start + duration as "HH:mm:ss". Empty inputs yield "".
func (uc *CalculateEndTime) Execute(
	ctx context.Context,
	startTime string,
	appointmentType string,
) (string, error) {

	if startTime == "" || appointmentType == "" {
		return "", nil
	}

	clock, err := domain.ParseClock(startTime)
	if err != nil {
		return "", domain.ErrInvalidTime
	}

	duration, err := uc.durations.Resolve(ctx, appointmentType)
	if err != nil {
		duration = FallbackDuration
	}

	// anchored on a fixed date so the result wraps past midnight
	end := clock.On(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)).Add(duration)
	return domain.FormatClock(end), nil
}
