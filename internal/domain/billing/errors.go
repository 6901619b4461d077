package billing

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	ErrEncounterNotFound = httperr.ErrBusiness("encounter_not_found")
	ErrAlreadyPaid       = httperr.ErrBusiness("already_paid")
)
