package pgjuju

import (
	"database/sql"

	"github.com/juju/errors"
	"github.com/lib/pq"
)

// Interpret converts a postgresql error into a juju error,
// convertible by the API server into a status code
func Interpret(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return errors.NewNotFound(err, "")
	}
	pgErr, ok := err.(*pq.Error)
	if !ok {
		return err
	}
	switch {
	case pgErr.Code.Name() == "unique_violation":
		return errors.NewAlreadyExists(err, "")
	case pgErr.Code.Class().Name() == "integrity_constraint_violation",
		pgErr.Code.Class().Name() == "data_exception":
		return errors.NewNotValid(err, "")
	}
	return err
}
