package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// sessionPatient resolves the patient linked to the session account.
func (a *Assistant) sessionPatient(ctx context.Context, session Session) (*models.Patient, error) {
	if session.Email == "" {
		return nil, domain.ErrPatientNotFound
	}
	return a.repo.FindPatient(ctx, domain.PatientQuery{
		Email: session.Email,
		Owner: session.Email,
	})
}

func (a *Assistant) LastAppointmentMessage(ctx context.Context, session Session) (string, error) {
	patient, err := a.sessionPatient(ctx, session)
	if errors.Is(err, domain.ErrPatientNotFound) {
		return "I couldn't find any appointments linked to your account.", nil
	}
	if err != nil {
		return "", err
	}

	ap, err := a.repo.LatestAppointmentForPatient(ctx, patient.ID)
	if errors.Is(err, domain.ErrAppointmentNotFound) {
		return "You don't have any past appointments yet.", nil
	}
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"🕓 Your last appointment was a <b>%s</b> with <b>%s</b> on <b>%s</b>. Status: <b>%s</b>.",
		ap.AppointmentTypeID,
		ap.PractitionerID,
		ap.StartTime.Format(domain.DateLayout),
		ap.Status,
	), nil
}

func (a *Assistant) UpcomingAppointmentsMessage(ctx context.Context, session Session) (string, error) {
	patient, err := a.sessionPatient(ctx, session)
	if errors.Is(err, domain.ErrPatientNotFound) {
		return "No appointments found for your account.", nil
	}
	if err != nil {
		return "", err
	}

	from, _ := domain.DayBounds(a.now())
	list, err := a.repo.UpcomingAppointmentsForPatient(ctx, patient.ID, from)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "You have no upcoming appointments.", nil
	}

	var b strings.Builder
	b.WriteString("📅 <b>Your upcoming appointments:</b><br>")
	for _, ap := range list {
		fmt.Fprintf(&b, "- %s: %s with %s (%s)<br>",
			ap.StartTime.Format(domain.DateLayout),
			ap.AppointmentTypeID,
			ap.PractitionerID,
			ap.Status,
		)
	}
	return b.String(), nil
}
