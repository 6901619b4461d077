package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
	tz   string
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	tz string,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
		tz:   tz,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	practitionerID string,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := timezone.ParseDate(uc.tz, date)
	if err != nil {
		return nil, domain.ErrInvalidTime
	}

	start, end := domain.DayBounds(day)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		practitionerID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:               ap.ID,
			StartTime:        ap.StartTime,
			EndTime:          ap.EndTime,
			Status:           ap.Status,
			PatientName:      ap.Patient.FullName,
			PractitionerName: ap.Practitioner.FullName,
			AppointmentType:  ap.AppointmentTypeID,
			BookingChannel:   ap.BookingChannel,
		})
	}

	return out, nil
}
