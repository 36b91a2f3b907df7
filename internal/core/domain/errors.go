package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Gateway errors (M-Pesa)
var (
	ErrGatewayTimeout  = errors.New("payment gateway timed out")
	ErrGatewayRejected = errors.New("payment gateway rejected request")
)

// MissingParentError reports a read-model join that found a dangling foreign
// key. The store does not enforce referential integrity, so deleting a parent
// leaves children orphaned; composers surface that instead of panicking.
type MissingParentError struct {
	Entity   string
	ID       int
	Parent   string
	ParentID int
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("%s %d references missing %s %d", e.Entity, e.ID, e.Parent, e.ParentID)
}
