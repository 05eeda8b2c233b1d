package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func newDraftAssessment() *model.RiskAssessment {
	return &model.RiskAssessment{
		ID:               types.NewRiskAssessmentID(),
		ProjectID:        types.NewProjectID(),
		BoundaryID:       types.NewBoundaryID(),
		ThreatScenarioID: types.NewThreatScenarioID(),
	}
}

func TestAssessmentEditorHappyPath(t *testing.T) {
	a := newDraftAssessment()
	editor := model.NewAssessmentEditor(a)
	gt.Value(t, editor.State()).Equal(model.EditStateViewing)

	gt.NoError(t, editor.Begin())
	gt.Value(t, editor.State()).Equal(model.EditStateEditingCore)

	core := model.AssessmentCore{
		Severity: types.RiskSeverityHigh,
		SLE:      100000,
		ARO:      0.5,
		Notes:    "ransomware on the billing system",
	}
	gt.NoError(t, editor.SetCore(core))
	gt.Value(t, editor.PreviewALE()).Equal(50000.0)

	gt.NoError(t, editor.SaveCore())
	gt.Value(t, editor.State()).Equal(model.EditStateEditingBreakdown)
	gt.Value(t, a.Severity).Equal(types.RiskSeverityHigh)
	gt.Value(t, a.SLE).Equal(100000.0)
	gt.Value(t, a.ARO).Equal(0.5)
	gt.Value(t, a.AssessmentNotes).Equal("ransomware on the billing system")

	gt.NoError(t, editor.SetBreakdown(model.SLEBreakdown{
		DirectOperational:    ptr(60000),
		TechnicalRemediation: ptr(40000),
	}))
	gt.NoError(t, editor.SaveBreakdown())
	gt.Value(t, editor.State()).Equal(model.EditStateViewing)

	sum, any := a.Breakdown.Sum()
	gt.Bool(t, any).True()
	gt.Value(t, sum).Equal(100000.0)
}

func TestAssessmentEditorCoreOnly(t *testing.T) {
	// Saving just the core is a legitimate stopping point. The breakdown
	// stays untouched until a later edit session completes it.
	a := newDraftAssessment()
	editor := model.NewAssessmentEditor(a)

	gt.NoError(t, editor.Begin())
	gt.NoError(t, editor.SetCore(model.AssessmentCore{
		Severity: types.RiskSeverityMedium,
		SLE:      20000,
		ARO:      1,
	}))
	gt.NoError(t, editor.SaveCore())

	gt.NoError(t, editor.Cancel())
	gt.Value(t, editor.State()).Equal(model.EditStateViewing)
	gt.Value(t, a.SLE).Equal(20000.0)
	_, any := a.Breakdown.Sum()
	gt.Bool(t, any).False()
}

func TestAssessmentEditorInvalidTransitions(t *testing.T) {
	t.Run("SetCore before Begin", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		err := editor.SetCore(model.AssessmentCore{})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrInvalidTransition)).True()
	})

	t.Run("SetBreakdown before Begin", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		gt.Error(t, editor.SetBreakdown(model.SLEBreakdown{}))
	})

	t.Run("SaveCore before Begin", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		gt.Error(t, editor.SaveCore())
	})

	t.Run("SaveBreakdown before SaveCore", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		gt.NoError(t, editor.Begin())
		err := editor.SaveBreakdown()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrInvalidTransition)).True()
	})

	t.Run("Begin while editing", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		gt.NoError(t, editor.Begin())
		gt.Error(t, editor.Begin())
	})

	t.Run("Cancel while viewing", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		gt.Error(t, editor.Cancel())
	})

	t.Run("core fields frozen after core save", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		gt.NoError(t, editor.Begin())
		gt.NoError(t, editor.SetCore(model.AssessmentCore{SLE: 100, ARO: 1}))
		gt.NoError(t, editor.SaveCore())

		err := editor.SetCore(model.AssessmentCore{SLE: 200, ARO: 1})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrInvalidTransition)).True()
	})
}

func TestAssessmentEditorSaveValidation(t *testing.T) {
	t.Run("invalid core blocks SaveCore and keeps the state", func(t *testing.T) {
		a := newDraftAssessment()
		editor := model.NewAssessmentEditor(a)
		gt.NoError(t, editor.Begin())
		gt.NoError(t, editor.SetCore(model.AssessmentCore{SLE: -100, ARO: 1}))

		gt.Error(t, editor.SaveCore())
		gt.Value(t, editor.State()).Equal(model.EditStateEditingCore)
		gt.Value(t, a.SLE).Equal(0.0)
	})

	t.Run("mismatched breakdown blocks SaveBreakdown", func(t *testing.T) {
		a := newDraftAssessment()
		editor := model.NewAssessmentEditor(a)
		gt.NoError(t, editor.Begin())
		gt.NoError(t, editor.SetCore(model.AssessmentCore{SLE: 1000, ARO: 1}))
		gt.NoError(t, editor.SaveCore())

		gt.NoError(t, editor.SetBreakdown(model.SLEBreakdown{DataRelated: ptr(400)}))
		err := editor.SaveBreakdown()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrBreakdownMismatch)).True()
		gt.Value(t, editor.State()).Equal(model.EditStateEditingBreakdown)
		_, any := a.Breakdown.Sum()
		gt.Bool(t, any).False()
	})
}

func TestAssessmentEditorCancelDiscards(t *testing.T) {
	a := newDraftAssessment()
	a.Severity = types.RiskSeverityLow
	a.SLE = 500
	a.ARO = 2

	editor := model.NewAssessmentEditor(a)
	gt.NoError(t, editor.Begin())
	gt.NoError(t, editor.SetCore(model.AssessmentCore{Severity: types.RiskSeverityHigh, SLE: 99999, ARO: 9}))
	gt.NoError(t, editor.Cancel())

	gt.Value(t, a.Severity).Equal(types.RiskSeverityLow)
	gt.Value(t, a.SLE).Equal(500.0)
	gt.Value(t, a.ARO).Equal(2.0)
	gt.Value(t, editor.PreviewALE()).Equal(1000.0)
}

func TestAssessmentEditorAdvisories(t *testing.T) {
	t.Run("high ARO and breakdown deficit surface together", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		gt.NoError(t, editor.Begin())
		gt.NoError(t, editor.SetCore(model.AssessmentCore{SLE: 1000, ARO: 500}))
		gt.NoError(t, editor.SetBreakdown(model.SLEBreakdown{DirectOperational: ptr(300)}))

		gt.Array(t, editor.Advisories()).Length(2)
	})

	t.Run("advisories do not block the core save", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		gt.NoError(t, editor.Begin())
		gt.NoError(t, editor.SetCore(model.AssessmentCore{SLE: 1000, ARO: 500}))
		gt.NoError(t, editor.SaveCore())
	})

	t.Run("clean values clear advisories", func(t *testing.T) {
		editor := model.NewAssessmentEditor(newDraftAssessment())
		gt.NoError(t, editor.Begin())
		gt.NoError(t, editor.SetCore(model.AssessmentCore{SLE: 1000, ARO: 500}))
		gt.NoError(t, editor.SetCore(model.AssessmentCore{SLE: 1000, ARO: 1}))
		gt.Array(t, editor.Advisories()).Length(0)
	})
}
