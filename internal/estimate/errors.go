package estimate

import "errors"

// Estimator error taxonomy. Callers match with errors.Is; Calculate never
// retries or logs on its own.
var (
	// ErrInvalidGeometry is returned when any dimension is zero or negative.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrMissingSelection is returned when a selection required for
	// computation (plumbing requirement, timeline) is absent. The wizard is
	// expected to make this unreachable.
	ErrMissingSelection = errors.New("missing selection")

	// ErrConfiguration is returned when a rate or catalog value is
	// nonsensical (negative rate, negative price, zero tile coverage).
	ErrConfiguration = errors.New("invalid pricing configuration")
)
