package temporal

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateSeries marks a metric column whose defined values are all equal
	ErrDegenerateSeries = errors.New("degenerate series: max equals min")
	// ErrDecadePanic marks a decade task that panicked
	ErrDecadePanic = errors.New("decade task panicked")
)

// DecadeError attributes a failure to a single decade
type DecadeError struct {
	Decade int
	Cause  error
}

func (e *DecadeError) Error() string {
	return fmt.Sprintf("decade %d: %v", e.Decade, e.Cause)
}

func (e *DecadeError) Unwrap() error {
	return e.Cause
}
