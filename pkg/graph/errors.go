package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrSelfLoop     = errors.New("self-loops are not allowed")
	ErrEmptyID      = errors.New("empty node ID")
	ErrUnknownAttr  = errors.New("unknown node attribute")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // Operation that failed (e.g., "AddEdge")
	Entity string // Entity type ("node", "edge", "attribute")
	ID     string // Entity identifier, if any
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// NodeNotFoundError creates a node not found error.
func NodeNotFoundError(op, id string) error {
	return &GraphError{Op: op, Entity: "node", ID: id, Cause: ErrNodeNotFound}
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
