package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the use case layer
var (
	// ErrPhaseCompleted signals that the target phase is marked complete and
	// the mutation needs an explicit confirmation before it may proceed.
	ErrPhaseCompleted = goerr.New("phase is marked complete; confirmation required")

	// ErrAccessDenied signals an ownership check failure.
	ErrAccessDenied = goerr.New("access denied")

	// ErrInvalidCredentials signals a failed token validation.
	ErrInvalidCredentials = goerr.New("invalid credentials")
)

// TagInvalidInput marks errors caused by invalid request input, mapped to
// 422 by the HTTP layer.
var TagInvalidInput = goerr.NewTag("invalid_input")

// Context keys for error values
const (
	ProjectIDKey  = "project_id"
	PhaseKeyKey   = "phase"
	EvidenceIDKey = "evidence_id"
)
