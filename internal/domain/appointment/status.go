package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "Booked"
	StatusConfirmed Status = "Confirmed"
	StatusCheckedIn Status = "Checked-in"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusNoShow    Status = "No-show"
)

const (
	ChannelFrontDesk     = "Front-desk"
	ChannelPatientPortal = "Patient Portal"
)

var transitions = map[Status][]Status{
	StatusBooked:    {StatusConfirmed, StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCompleted, StatusNoShow},
}

// ActiveStatuses are the statuses swept to Completed once the appointment
// end time has passed.
var ActiveStatuses = []Status{StatusBooked, StatusConfirmed, StatusCheckedIn}

// FreeingStatuses release the interval for rebooking.
var FreeingStatuses = []Status{StatusCancelled, StatusNoShow}

// ===============================
// Validations
// ===============================

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusBooked, StatusConfirmed, StatusCheckedIn,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// Blocks reports whether an appointment in this status occupies its interval.
func (s Status) Blocks() bool {
	for _, f := range FreeingStatuses {
		if s == f {
			return false
		}
	}
	return true
}

func (s Status) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return ErrInvalidState
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

func InitialStatus() Status {
	return StatusBooked
}

// StatusNames is used when persisting status filters.
func StatusNames(list []Status) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s)
	}
	return out
}
