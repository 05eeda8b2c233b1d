package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

func TestParsePhaseKey(t *testing.T) {
	key, err := types.ParsePhaseKey("evidence_gaps")
	gt.NoError(t, err).Required()
	gt.Value(t, key).Equal(types.PhaseEvidenceGaps)

	_, err = types.ParsePhaseKey("shipping")
	gt.Error(t, err)

	gt.Bool(t, types.PhaseKey("").IsValid()).False()
	gt.Array(t, types.AllPhaseKeys()).Length(6)
}

func TestRiskValue(t *testing.T) {
	gt.Value(t, types.RiskSeverityHigh.RiskValue()).Equal(8)
	gt.Value(t, types.RiskSeverityMedium.RiskValue()).Equal(5)
	gt.Value(t, types.RiskSeverityLow.RiskValue()).Equal(2)
	gt.Value(t, types.RiskSeverity("unknown").RiskValue()).Equal(0)
}

func TestStatusNormalize(t *testing.T) {
	gt.Value(t, types.ComplianceStatus("").Normalize()).Equal(types.ComplianceStatusNotAssessed)
	gt.Value(t, types.ComplianceStatusCompliant.Normalize()).Equal(types.ComplianceStatusCompliant)

	gt.Value(t, types.ProjectStatus("").Normalize()).Equal(types.ProjectStatusInProgress)
	gt.Value(t, types.ProjectStatusOnHold.Normalize()).Equal(types.ProjectStatusOnHold)
}
