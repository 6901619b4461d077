package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the service reacts to.
const (
	exclusionViolation = "23P01"
	uniqueViolation    = "23505"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict reports whether err comes from the appointment
// overlap exclusion constraint.
func IsExclusionConflict(err error) bool {
	return pgCode(err) == exclusionViolation
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == uniqueViolation
}
