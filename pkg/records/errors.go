package records

import (
	"errors"
	"fmt"
)

// ErrMissingData is the sentinel matched by every MissingDataError.
var ErrMissingData = errors.New("missing required field")

// MissingDataError reports a record that lacks a required field after cleaning.
type MissingDataError struct {
	Index  int    // Position of the record in the input
	Field  string // Name of the missing field
	Record ParticipationRecord
}

// Error implements the error interface.
func (e *MissingDataError) Error() string {
	return fmt.Sprintf("record %d (exhibition %q, artist %q): %s: %v",
		e.Index, e.Record.ExhibitionID, e.Record.ArtistID, e.Field, ErrMissingData)
}

// Unwrap returns ErrMissingData so callers can use errors.Is.
func (e *MissingDataError) Unwrap() error {
	return ErrMissingData
}
