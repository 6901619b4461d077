package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentTypeLookup interface {
	GetAppointmentType(ctx context.Context, id string) (*models.AppointmentType, error)
}

// DurationCache is a shared cache layer in front of the lookup.
type DurationCache interface {
	GetDuration(ctx context.Context, appointmentType string) (time.Duration, bool)
	SetDuration(ctx context.Context, appointmentType string, d time.Duration)
}

// DurationResolver maps an appointment type to its fixed duration.
// Appointment types are immutable reference data, so resolved durations
// are memoised for the life of the process.
type DurationResolver struct {
	lookup AppointmentTypeLookup
	shared DurationCache

	mu    sync.RWMutex
	local map[string]time.Duration
}

func NewDurationResolver(lookup AppointmentTypeLookup, shared DurationCache) *DurationResolver {
	return &DurationResolver{
		lookup: lookup,
		shared: shared,
		local:  make(map[string]time.Duration),
	}
}

func (r *DurationResolver) Resolve(ctx context.Context, appointmentType string) (time.Duration, error) {
	if appointmentType == "" {
		return 0, ErrUnknownAppointmentType
	}

	r.mu.RLock()
	d, ok := r.local[appointmentType]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}

	if r.shared != nil {
		if d, ok := r.shared.GetDuration(ctx, appointmentType); ok && d > 0 {
			r.remember(appointmentType, d)
			return d, nil
		}
	}

	at, err := r.lookup.GetAppointmentType(ctx, appointmentType)
	if err != nil {
		return 0, err
	}
	if at.DefaultDurationMins <= 0 {
		return 0, ErrInvalidConfiguration
	}

	d = time.Duration(at.DefaultDurationMins) * time.Minute
	r.remember(appointmentType, d)
	if r.shared != nil {
		r.shared.SetDuration(ctx, appointmentType, d)
	}
	return d, nil
}

func (r *DurationResolver) remember(appointmentType string, d time.Duration) {
	r.mu.Lock()
	r.local[appointmentType] = d
	r.mu.Unlock()
}
