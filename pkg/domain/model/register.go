package model

import (
	"github.com/secmon-lab/themis/pkg/domain/model/config"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// RegisterRow is one denormalized reporting row of the risk register: a
// threat scenario joined with its linked gap, all assessments referencing it
// and the evidence reachable through the gap.
type RegisterRow struct {
	Scenario         *ThreatScenario   `json:"scenario"`
	Gap              *Gap              `json:"gap,omitempty"`
	Assessments      []*RiskAssessment `json:"assessments"`
	Evidence         []*Evidence       `json:"evidence,omitempty"`
	HighestSLE       float64           `json:"highest_sle"`
	HighestARO       float64           `json:"highest_aro"`
	ALE              *float64          `json:"ale,omitempty"`
	HighestRiskValue *int              `json:"highest_risk_value,omitempty"`
	GapCount         int               `json:"gap_count"`
	AROFrequency     string            `json:"aro_frequency"`
}

// ALEBucket maps an annualized loss expectancy to a severity badge using the
// configured thresholds.
func ALEBucket(ale float64, t *config.ALEThresholds) types.RiskSeverity {
	if t == nil {
		t = config.DefaultALEThresholds()
	}
	switch {
	case ale >= t.High:
		return types.RiskSeverityHigh
	case ale >= t.Medium:
		return types.RiskSeverityMedium
	default:
		return types.RiskSeverityLow
	}
}

// RegisterSummaryRow is one row of the CRQ summary report. Only scenarios
// with both an SLE and an ARO present qualify.
type RegisterSummaryRow struct {
	ScenarioID   types.ThreatScenarioID `json:"scenario_id"`
	ScenarioName string                 `json:"scenario_name"`
	SLE          float64                `json:"sle"`
	ARO          float64                `json:"aro"`
	ALE          float64                `json:"ale"`
	Bucket       types.RiskSeverity     `json:"bucket"`
}

// RegisterSummary aggregates the qualifying register rows.
type RegisterSummary struct {
	Rows     []*RegisterSummaryRow      `json:"rows"`
	TotalALE float64                    `json:"total_ale"`
	Counts   map[types.RiskSeverity]int `json:"counts"`
}
