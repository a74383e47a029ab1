package service

import "errors"

var (
	// ErrUnauthorized is returned when an operation that requires an
	// authenticated account is called without one.
	ErrUnauthorized = errors.New("authenticated account required")

	// ErrJobNotFound is returned when a referenced job or series parent
	// does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrEmptyPatch is returned when an update carries no updatable
	// fields after protected columns are stripped.
	ErrEmptyPatch = errors.New("no updatable fields in patch")

	// ErrJobNotCompleted is returned when invoicing a job that has not
	// been completed yet.
	ErrJobNotCompleted = errors.New("job is not completed")

	// ErrAlreadyInvoiced is returned when a job already has an invoice.
	ErrAlreadyInvoiced = errors.New("job already invoiced")

	// ErrRateNotFound is returned when no catalog rate exists for a
	// service/property type pair.
	ErrRateNotFound = errors.New("no rate configured for service and property type")
)
