package engine

import "errors"

// Attempt-level failure causes. These never escape Decide; they shape
// the diagnostic reason carried by a fail-closed decision.
var (
	ErrGeneration     = errors.New("generation request failed")
	ErrInvalidStatus  = errors.New("invalid status returned")
	ErrInvalidAmount  = errors.New("invalid reimbursable amount")
	ErrNegativeAmount = errors.New("negative reimbursable amount")
)
