package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	ErrInvalidConfiguration   = httperr.ErrBusiness("invalid_configuration")
	ErrUnknownAppointmentType = httperr.ErrBusiness("unknown_appointment_type")
	ErrSlotNoLongerAvailable  = httperr.ErrBusiness("slot_no_longer_available")
	ErrIntervalOverlap        = httperr.ErrBusiness("interval_overlap")

	ErrPractitionerNotFound = httperr.ErrBusiness("practitioner_not_found")
	ErrPatientNotFound      = httperr.ErrBusiness("patient_not_found")
	ErrAppointmentNotFound  = httperr.ErrBusiness("appointment_not_found")
	ErrOutsideWorkingHours  = httperr.ErrBusiness("outside_working_hours")
	ErrInvalidState         = httperr.ErrBusiness("invalid_state")
	ErrInvalidTime          = httperr.ErrBusiness("invalid_date_or_time")
	ErrDateInPast           = httperr.ErrBusiness("date_in_past")
)
