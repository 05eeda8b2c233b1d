package model

import (
	"fmt"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// EditState is the state of a risk assessment row editor. The two-step save
// protocol lets a user record a quick severity/SLE/ARO estimate without being
// forced to complete the full cost breakdown, while the breakdown still has
// to reconcile before it is final.
type EditState string

const (
	EditStateViewing          EditState = "VIEWING"
	EditStateEditingCore      EditState = "EDITING_CORE"
	EditStateEditingBreakdown EditState = "EDITING_BREAKDOWN"
)

// String returns the string representation of the edit state
func (s EditState) String() string {
	return string(s)
}

// AssessmentCore are the fields saved by the first step of the protocol.
type AssessmentCore struct {
	Severity types.RiskSeverity `json:"severity"`
	SLE      float64            `json:"sle"`
	ARO      float64            `json:"aro"`
	Notes    string             `json:"notes"`
}

// AssessmentEditor drives the Viewing -> EditingCore -> EditingBreakdown
// state machine for one assessment row. The underlying assessment is only
// mutated by SaveCore and SaveBreakdown; Cancel discards all working state.
type AssessmentEditor struct {
	state      EditState
	assessment *RiskAssessment
	core       AssessmentCore
	breakdown  SLEBreakdown
	advisories []string
}

// NewAssessmentEditor returns an editor in the Viewing state.
func NewAssessmentEditor(a *RiskAssessment) *AssessmentEditor {
	return &AssessmentEditor{
		state:      EditStateViewing,
		assessment: a,
	}
}

// State returns the current editor state.
func (e *AssessmentEditor) State() EditState {
	return e.state
}

// Advisories returns the non-blocking validation messages for the current
// working values.
func (e *AssessmentEditor) Advisories() []string {
	return e.advisories
}

// Begin starts editing: Viewing -> EditingCore. Working copies of the core
// and breakdown fields are loaded from the assessment.
func (e *AssessmentEditor) Begin() error {
	switch e.state {
	case EditStateViewing:
		e.core = AssessmentCore{
			Severity: e.assessment.Severity,
			SLE:      e.assessment.SLE,
			ARO:      e.assessment.ARO,
			Notes:    e.assessment.AssessmentNotes,
		}
		e.breakdown = e.assessment.Breakdown
		e.refreshAdvisories()
		e.state = EditStateEditingCore
		return nil
	case EditStateEditingCore, EditStateEditingBreakdown:
		return goerr.Wrap(ErrInvalidTransition, "already editing", goerr.V(StateKey, e.state))
	default:
		return goerr.Wrap(ErrInvalidTransition, "unknown state", goerr.V(StateKey, e.state))
	}
}

// SetCore updates the working core fields. Core fields are only mutable in
// EditingCore; after SaveCore they are frozen.
func (e *AssessmentEditor) SetCore(core AssessmentCore) error {
	switch e.state {
	case EditStateEditingCore:
		e.core = core
		e.refreshAdvisories()
		return nil
	case EditStateViewing:
		return goerr.Wrap(ErrInvalidTransition, "not editing", goerr.V(StateKey, e.state))
	case EditStateEditingBreakdown:
		return goerr.Wrap(ErrInvalidTransition, "core fields are frozen after the core save", goerr.V(StateKey, e.state))
	default:
		return goerr.Wrap(ErrInvalidTransition, "unknown state", goerr.V(StateKey, e.state))
	}
}

// SetBreakdown updates the working breakdown fields. The breakdown is
// visible and mutable in both editing states but only persisted by
// SaveBreakdown.
func (e *AssessmentEditor) SetBreakdown(b SLEBreakdown) error {
	switch e.state {
	case EditStateEditingCore, EditStateEditingBreakdown:
		e.breakdown = b
		e.refreshAdvisories()
		return nil
	case EditStateViewing:
		return goerr.Wrap(ErrInvalidTransition, "not editing", goerr.V(StateKey, e.state))
	default:
		return goerr.Wrap(ErrInvalidTransition, "unknown state", goerr.V(StateKey, e.state))
	}
}

// PreviewALE recomputes the annualized loss expectancy live from the working
// (possibly unsaved) core fields. The canonical display value comes from the
// persisted assessment instead.
func (e *AssessmentEditor) PreviewALE() float64 {
	switch e.state {
	case EditStateEditingCore, EditStateEditingBreakdown:
		return e.core.SLE * e.core.ARO
	default:
		return e.assessment.ALE()
	}
}

// SaveCore validates only the core fields, applies them to the assessment
// and transitions to EditingBreakdown. Breakdown advisories do not block
// this step.
func (e *AssessmentEditor) SaveCore() error {
	switch e.state {
	case EditStateEditingCore:
	case EditStateViewing, EditStateEditingBreakdown:
		return goerr.Wrap(ErrInvalidTransition, "core save requires the core editing state", goerr.V(StateKey, e.state))
	default:
		return goerr.Wrap(ErrInvalidTransition, "unknown state", goerr.V(StateKey, e.state))
	}

	candidate := *e.assessment
	candidate.Severity = e.core.Severity
	candidate.SLE = e.core.SLE
	candidate.ARO = e.core.ARO
	candidate.AssessmentNotes = e.core.Notes
	if err := candidate.ValidateCore(); err != nil {
		return err
	}

	e.assessment.Severity = candidate.Severity
	e.assessment.SLE = candidate.SLE
	e.assessment.ARO = candidate.ARO
	e.assessment.AssessmentNotes = candidate.AssessmentNotes
	e.state = EditStateEditingBreakdown
	return nil
}

// SaveBreakdown re-validates the core fields and the sum invariant, applies
// the breakdown and returns to Viewing. A mismatching sum blocks the save.
func (e *AssessmentEditor) SaveBreakdown() error {
	switch e.state {
	case EditStateEditingBreakdown:
	case EditStateViewing, EditStateEditingCore:
		return goerr.Wrap(ErrInvalidTransition, "breakdown save requires a completed core save", goerr.V(StateKey, e.state))
	default:
		return goerr.Wrap(ErrInvalidTransition, "unknown state", goerr.V(StateKey, e.state))
	}

	candidate := *e.assessment
	candidate.Breakdown = e.breakdown
	if err := candidate.ValidateCore(); err != nil {
		return err
	}
	if err := candidate.ValidateBreakdown(); err != nil {
		return err
	}

	e.assessment.Breakdown = e.breakdown
	e.state = EditStateViewing
	return nil
}

// Cancel discards all working changes and returns to Viewing. It is valid in
// both editing states.
func (e *AssessmentEditor) Cancel() error {
	switch e.state {
	case EditStateEditingCore, EditStateEditingBreakdown:
		e.core = AssessmentCore{}
		e.breakdown = SLEBreakdown{}
		e.advisories = nil
		e.state = EditStateViewing
		return nil
	case EditStateViewing:
		return goerr.Wrap(ErrInvalidTransition, "not editing", goerr.V(StateKey, e.state))
	default:
		return goerr.Wrap(ErrInvalidTransition, "unknown state", goerr.V(StateKey, e.state))
	}
}

// refreshAdvisories recomputes the continuous, non-blocking validation
// messages from the working values.
func (e *AssessmentEditor) refreshAdvisories() {
	var msgs []string

	if e.core.Severity != "" && !e.core.Severity.IsValid() {
		msgs = append(msgs, fmt.Sprintf("unknown severity %q", e.core.Severity))
	}
	if e.core.SLE < 0 {
		msgs = append(msgs, "SLE must be non-negative")
	}
	if e.core.ARO < 0 {
		msgs = append(msgs, "ARO must be non-negative")
	}
	if e.core.ARO > AROSoftLimit {
		msgs = append(msgs, fmt.Sprintf("ARO of %s/year exceeds %d; verify the occurrence rate", formatRate(e.core.ARO), int(AROSoftLimit)))
	}

	if sum, any := e.breakdown.Sum(); any && e.core.SLE > 0 {
		if diff := e.core.SLE - sum; math.Abs(diff) > BreakdownTolerance {
			msgs = append(msgs, fmt.Sprintf("Remaining: $%s", formatCurrency(diff)))
		}
	}

	e.advisories = msgs
}
