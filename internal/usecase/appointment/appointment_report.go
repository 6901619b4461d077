package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// AppointmentReportInput carries the optional report filters. Dates are
// clinic-local YYYY-MM-DD and both ends are inclusive.
type AppointmentReportInput struct {
	PractitionerID  string
	AppointmentType string
	Status          string
	FromDate        string
	ToDate          string
}

// AppointmentReport lists appointments with the practitioner's consultation
// fee and the payment status, newest first.
type AppointmentReport struct {
	repo domain.Repository
	tz   string
}

func NewAppointmentReport(
	repo domain.Repository,
	tz string,
) *AppointmentReport {
	return &AppointmentReport{
		repo: repo,
		tz:   tz,
	}
}

func (uc *AppointmentReport) Execute(
	ctx context.Context,
	in AppointmentReportInput,
) ([]dto.AppointmentReportRowDTO, error) {

	// ======================================================
	// 🔎 FILTERS
	// ======================================================
	filter := domain.ReportFilter{
		PractitionerID:    in.PractitionerID,
		AppointmentTypeID: in.AppointmentType,
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(st)
	}

	if in.FromDate != "" {
		day, err := timezone.ParseDate(uc.tz, in.FromDate)
		if err != nil {
			return nil, domain.ErrInvalidTime
		}
		start, _ := domain.DayBounds(day)
		filter.From = &start
	}

	if in.ToDate != "" {
		day, err := timezone.ParseDate(uc.tz, in.ToDate)
		if err != nil {
			return nil, domain.ErrInvalidTime
		}
		_, end := domain.DayBounds(day)
		filter.To = &end
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, domain.ErrInvalidTime
	}

	// ======================================================
	// 📋 ROWS
	// ======================================================
	appointments, err := uc.repo.ReportAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(uc.tz)
	out := make([]dto.AppointmentReportRowDTO, 0, len(appointments))
	for _, ap := range appointments {
		start := ap.StartTime.In(loc)
		out = append(out, dto.AppointmentReportRowDTO{
			AppointmentID:   ap.ID,
			AppointmentDate: start.Format(domain.DateLayout),
			StartTime:       domain.FormatClock(start),
			Patient:         ap.PatientID,
			Practitioner:    ap.PractitionerID,
			AppointmentType: ap.AppointmentTypeID,
			Status:          ap.Status,
			ConsultationFee: ap.Practitioner.ConsultationFee,
			PaymentStatus:   ap.PaymentStatus,
		})
	}

	return out, nil
}
