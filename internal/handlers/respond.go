package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type businessStatus struct {
	status  int
	message string
}

var businessErrors = map[string]businessStatus{
	"invalid_date_or_time":     {http.StatusBadRequest, "Invalid date or time."},
	"date_in_past":             {http.StatusBadRequest, "The date is in the past."},
	"invalid_status":           {http.StatusBadRequest, "Unknown appointment status."},
	"outside_working_hours":    {http.StatusBadRequest, "Outside the practitioner's working hours."},
	"unknown_appointment_type": {http.StatusBadRequest, "Unknown appointment type."},
	"invalid_configuration":    {http.StatusBadRequest, "Appointment type is misconfigured."},
	"invalid_role":             {http.StatusBadRequest, "Unknown role."},
	"invalid_schedule":         {http.StatusBadRequest, "Working windows must end after they start."},

	"practitioner_not_found": {http.StatusNotFound, "Practitioner not found."},
	"patient_not_found":      {http.StatusNotFound, "Patient not found."},
	"appointment_not_found":  {http.StatusNotFound, "Appointment not found."},
	"encounter_not_found":    {http.StatusNotFound, "Encounter not found."},
	"user_not_found":         {http.StatusNotFound, "User not found."},

	"slot_no_longer_available": {http.StatusConflict, "This slot was just taken. Please pick another one."},
	"interval_overlap":         {http.StatusConflict, "This slot was just taken. Please pick another one."},
	"invalid_state":            {http.StatusConflict, "The appointment cannot move to that status."},
	"already_paid":             {http.StatusConflict, "This encounter has already been paid."},
	"email_already_exists":     {http.StatusConflict, "Email already registered."},
	"already_exists":           {http.StatusConflict, "A record with this name already exists."},
}

// writeError maps business errors to their status and hides everything
// else behind a 500.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	code := httperr.Code(err)
	if code == "" {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	bs, ok := businessErrors[code]
	if !ok {
		bs = businessStatus{http.StatusBadRequest, code}
	}
	httperr.Write(c, bs.status, code, bs.message)
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
