package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrBreakdownMismatch = goerr.New("SLE breakdown does not reconcile with the declared SLE")
	ErrInvalidSeverity   = goerr.New("invalid risk severity")
	ErrInvalidTransition = goerr.New("invalid edit state transition")
)

// Context keys for error values
const (
	RemainingKey = "remaining"
	StateKey     = "state"
)
