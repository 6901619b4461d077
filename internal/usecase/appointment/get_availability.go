package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type GetAvailabilityInput struct {
	PractitionerID  string
	AppointmentType string
	Date            string
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	repo      domain.Repository
	durations *domain.DurationResolver
	tz        string
	step      time.Duration
	now       func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	durations *domain.DurationResolver,
	tz string,
	step time.Duration,
) *GetAvailability {
	return &GetAvailability{
		repo:      repo,
		durations: durations,
		tz:        tz,
		step:      step,
		now:       func() time.Time { return timezone.NowIn(tz) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute returns the free start times of the practitioner on the date as
// ascending "HH:mm:ss" strings. An empty list is a valid answer.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) ([]string, error) {

	// --------------------------------------------------
	// 1️⃣ Date in clinic timezone
	// --------------------------------------------------
	date, err := timezone.ParseDate(uc.tz, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidTime
	}

	now := uc.now().In(date.Location())
	today, _ := domain.DayBounds(now)
	if date.Before(today) {
		return nil, domain.ErrDateInPast
	}

	// --------------------------------------------------
	// 2️⃣ Practitioner + duration
	// --------------------------------------------------
	practitioner, err := uc.repo.GetPractitioner(ctx, in.PractitionerID)
	if err != nil {
		return nil, err
	}

	duration, err := uc.durations.Resolve(ctx, in.AppointmentType)
	if err != nil {
		return nil, err
	}

	windows, err := domain.WindowsFor(date, practitioner.Schedule)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return []string{}, nil
	}

	// --------------------------------------------------
	// 3️⃣ Busy calendar of the day
	// --------------------------------------------------
	dayStart, dayEnd := domain.DayBounds(date)
	busy, err := uc.repo.ListBlockingAppointments(
		ctx,
		practitioner.ID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	q := domain.SlotQuery{
		Windows:  windows,
		Duration: duration,
		Step:     uc.step,
		Index:    domain.NewCalendarIndex(busy),
	}
	if date.Equal(today) {
		q.NotBefore = now
	}

	slots, err := domain.GenerateSlots(q)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.FormatClock(s))
	}
	return out, nil
}
