package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

var requiredEntities = []string{"practitioner", "appointment_type", "appointment_date"}

// Entities is what the model extracted from a booking request.
type Entities struct {
	Practitioner    string `json:"practitioner"`
	AppointmentType string `json:"appointment_type"`
	AppointmentDate string `json:"appointment_date"`
}

// SlotsReply carries either slots with the entities they were found for,
// or a message for the user.
type SlotsReply struct {
	Slots    []string  `json:"slots,omitempty"`
	Entities *Entities `json:"entities,omitempty"`
	Message  string    `json:"message,omitempty"`
}

const (
	msgNeedMoreInfo    = "I need a bit more info, please specify the doctor or date."
	msgCannotInterpret = "I had trouble interpreting that, please rephrase your request."
)

func (a *Assistant) SlotsFromMessage(
	ctx context.Context,
	session Session,
	message string,
	history []Turn,
) (*SlotsReply, error) {

	practitioners, err := a.repo.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	types, err := a.repo.ListAppointmentTypes(ctx)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(a.today(), practitioners, types, history, message)

	raw, err := a.interpreter.Interpret(ctx, prompt)
	if err != nil {
		a.log.Warn("interpreter failed", zap.Error(err))
		return &SlotsReply{Message: "AI understanding failed: " + err.Error()}, nil
	}
	reply := strings.TrimSpace(raw)

	// --------------------------------------------------
	// Keywords
	// --------------------------------------------------
	switch reply {
	case keywordLastAppointment:
		msg, err := a.LastAppointmentMessage(ctx, session)
		if err != nil {
			return nil, err
		}
		return &SlotsReply{Message: msg}, nil
	case keywordUpcomingAppointments:
		msg, err := a.UpcomingAppointmentsMessage(ctx, session)
		if err != nil {
			return nil, err
		}
		return &SlotsReply{Message: msg}, nil
	}

	// --------------------------------------------------
	// Entities
	// --------------------------------------------------
	match := jsonObject.FindString(reply)
	if match == "" {
		return &SlotsReply{Message: reply}, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(match), &fields); err != nil {
		a.log.Warn("unparseable interpreter reply", zap.String("reply", reply), zap.Error(err))
		return &SlotsReply{Message: msgCannotInterpret}, nil
	}
	if len(fields) == 0 {
		return &SlotsReply{Message: reply}, nil
	}

	for _, key := range requiredEntities {
		if _, ok := fields[key]; !ok {
			return &SlotsReply{Message: msgNeedMoreInfo}, nil
		}
	}

	entities := &Entities{
		Practitioner:    fmt.Sprint(fields["practitioner"]),
		AppointmentType: fmt.Sprint(fields["appointment_type"]),
		AppointmentDate: fmt.Sprint(fields["appointment_date"]),
	}

	// --------------------------------------------------
	// Slots
	// --------------------------------------------------
	slots, err := a.slots.Execute(ctx, appointment.GetAvailabilityInput{
		PractitionerID:  entities.Practitioner,
		AppointmentType: entities.AppointmentType,
		Date:            entities.AppointmentDate,
	})
	switch {
	case errors.Is(err, domain.ErrUnknownAppointmentType),
		errors.Is(err, domain.ErrInvalidConfiguration):
		slots = nil
	case err != nil:
		a.log.Warn("slot lookup from chat failed",
			zap.String("practitioner", entities.Practitioner),
			zap.String("date", entities.AppointmentDate),
			zap.Error(err),
		)
		return &SlotsReply{Message: msgCannotInterpret}, nil
	}

	if len(slots) == 0 {
		return &SlotsReply{
			Message: fmt.Sprintf("Sorry, no slots available for %s on %s.", entities.Practitioner, entities.AppointmentDate),
		}, nil
	}

	return &SlotsReply{Slots: slots, Entities: entities}, nil
}
