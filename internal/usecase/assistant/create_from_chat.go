package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

type ChatBookingInput struct {
	PatientName     string `json:"patient_name"`
	Practitioner    string `json:"practitioner"`
	AppointmentDate string `json:"appointment_date"`
	StartTime       string `json:"start_time"`
	AppointmentType string `json:"appointment_type"`
}

type ChatBookingResult struct {
	Success         bool   `json:"success,omitempty"`
	AppointmentName string `json:"appointment_name,omitempty"`
	Message         string `json:"message,omitempty"`
	Error           string `json:"error,omitempty"`
}

// CreateFromChat books the slot picked in the chat. Failures are reported
// in the result, never returned.
func (a *Assistant) CreateFromChat(
	ctx context.Context,
	session Session,
	in ChatBookingInput,
) ChatBookingResult {

	fail := func(err error) ChatBookingResult {
		a.log.Warn("chat booking failed",
			zap.String("practitioner", in.Practitioner),
			zap.String("date", in.AppointmentDate),
			zap.String("start_time", in.StartTime),
			zap.Error(err),
		)
		return ChatBookingResult{
			Error: "Sorry, I couldn't finalize the booking. Error: " + err.Error(),
		}
	}

	patient, err := a.repo.FindPatient(ctx, domain.PatientQuery{
		FullName: in.PatientName,
		Email:    session.Email,
		Owner:    session.Email,
	})
	if err != nil {
		return fail(fmt.Errorf("no patient found for %q or %q: %w", in.PatientName, session.Email, err))
	}

	ap, err := a.booker.Execute(ctx, appointment.ConfirmBookingInput{
		PractitionerID:  in.Practitioner,
		PatientID:       patient.ID,
		AppointmentType: in.AppointmentType,
		Date:            in.AppointmentDate,
		StartTime:       in.StartTime,
		Channel:         domain.ChannelPatientPortal,
		UserID:          session.UserID,
	})
	if err != nil {
		return fail(err)
	}

	return ChatBookingResult{
		Success:         true,
		AppointmentName: ap.ID,
		Message:         fmt.Sprintf("✅ You're all booked! Your appointment ID is <b>%s</b>.", ap.ID),
	}
}
