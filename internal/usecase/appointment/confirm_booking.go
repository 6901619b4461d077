package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ConfirmBookingInput struct {
	PractitionerID  string
	PatientID       string
	AppointmentType string

	Date      string
	StartTime string

	// Channel defaults to Front-desk.
	Channel string
	UserID  *uint
}

// ======================================================
// USE CASE
// ======================================================

type ConfirmBooking struct {
	repo      domain.Repository
	durations *domain.DurationResolver
	locker    domain.Locker
	audit     *audit.Dispatcher
	tz        string
	now       func() time.Time
}

func NewConfirmBooking(
	repo domain.Repository,
	durations *domain.DurationResolver,
	locker domain.Locker,
	audit *audit.Dispatcher,
	tz string,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:      repo,
		durations: durations,
		locker:    locker,
		audit:     audit,
		tz:        tz,
		now:       func() time.Time { return timezone.NowIn(tz) },
	}
}

// NewAppointmentID returns a fresh "APT-xxxxxxxx" name.
func NewAppointmentID() string {
	return catalog.NewID("APT")
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	in ConfirmBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Date / time in clinic timezone
	// --------------------------------------------------
	date, err := timezone.ParseDate(uc.tz, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidTime
	}

	clock, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return nil, domain.ErrInvalidTime
	}

	start := clock.On(date)
	if start.Before(uc.now()) {
		return nil, domain.ErrDateInPast
	}

	// --------------------------------------------------
	// 2️⃣ Duration
	// --------------------------------------------------
	duration, err := uc.durations.Resolve(ctx, in.AppointmentType)
	if err != nil {
		return nil, err
	}

	slot := domain.Interval{Start: start, End: start.Add(duration)}

	// --------------------------------------------------
	// 3️⃣ Practitioner + patient
	// --------------------------------------------------
	practitioner, err := uc.repo.GetPractitioner(ctx, in.PractitionerID)
	if err != nil {
		return nil, err
	}

	patient, err := uc.repo.GetPatient(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Working hours
	// --------------------------------------------------
	windows, err := domain.WindowsFor(date, practitioner.Schedule)
	if err != nil {
		return nil, err
	}
	if !domain.FitsSchedule(windows, slot) {
		return nil, domain.ErrOutsideWorkingHours
	}

	channel := in.Channel
	if channel == "" {
		channel = domain.ChannelFrontDesk
	}

	ap := &models.Appointment{
		ID:                NewAppointmentID(),
		PatientID:         patient.ID,
		PractitionerID:    practitioner.ID,
		AppointmentTypeID: in.AppointmentType,
		StartTime:         slot.Start,
		EndTime:           slot.End,
		Status:            string(domain.InitialStatus()),
		BookingChannel:    channel,
		PaymentStatus:     billing.PaymentPending,
	}

	// --------------------------------------------------
	// 5️⃣ Re-check + insert under the practitioner-day lock
	// --------------------------------------------------
	if err := uc.book(ctx, date, ap); err != nil {
		if errors.Is(err, domain.ErrSlotNoLongerAvailable) {
			uc.audit.Dispatch(audit.Event{
				UserID:   in.UserID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				EntityID: practitioner.ID,
				Metadata: map[string]string{
					"date":       in.Date,
					"start_time": domain.FormatClock(start),
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{
			"practitioner": ap.PractitionerID,
			"patient":      ap.PatientID,
			"channel":      ap.BookingChannel,
		},
	})

	return ap, nil
}

func (uc *ConfirmBooking) book(
	ctx context.Context,
	date time.Time,
	ap *models.Appointment,
) error {

	unlock, err := uc.locker.Lock(ctx, domain.BookingKey(ap.PractitionerID, date))
	if err != nil {
		return fmt.Errorf("acquire booking lock: %w", err)
	}
	defer unlock()

	return uc.repo.Book(ctx, ap)
}
