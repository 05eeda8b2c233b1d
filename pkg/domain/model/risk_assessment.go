package model

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/domain/types"
)

// BreakdownTolerance is the absolute tolerance when reconciling the SLE
// breakdown components against the declared single loss expectancy.
const BreakdownTolerance = 0.01

// AROSoftLimit is the rate above which the ARO is flagged as suspicious.
// It never blocks a save.
const AROSoftLimit = 365.0

// SLEBreakdown itemizes a single loss expectancy into cost components.
// Every component is optional; a nil component is excluded from the sum.
type SLEBreakdown struct {
	DirectOperational    *float64 `json:"direct_operational,omitempty"`
	TechnicalRemediation *float64 `json:"technical_remediation,omitempty"`
	DataRelated          *float64 `json:"data_related,omitempty"`
	ComplianceLegal      *float64 `json:"compliance_legal,omitempty"`
	Reputational         *float64 `json:"reputational,omitempty"`
}

// Sum returns the total of the set components and whether any component is
// set at all.
func (b SLEBreakdown) Sum() (float64, bool) {
	var total float64
	var any bool
	for _, c := range []*float64{
		b.DirectOperational,
		b.TechnicalRemediation,
		b.DataRelated,
		b.ComplianceLegal,
		b.Reputational,
	} {
		if c != nil {
			total += *c
			any = true
		}
	}
	return total, any
}

// Validate checks that every set component is non-negative.
func (b SLEBreakdown) Validate() error {
	for name, c := range map[string]*float64{
		"direct_operational":    b.DirectOperational,
		"technical_remediation": b.TechnicalRemediation,
		"data_related":          b.DataRelated,
		"compliance_legal":      b.ComplianceLegal,
		"reputational":          b.Reputational,
	} {
		if c != nil && *c < 0 {
			return goerr.New("breakdown component must be non-negative",
				goerr.V("component", name), goerr.V("value", *c))
		}
	}
	return nil
}

// RiskAssessment quantifies one threat scenario against one boundary asset.
type RiskAssessment struct {
	ID               types.RiskAssessmentID `json:"id"`
	ProjectID        types.ProjectID        `json:"project_id"`
	BoundaryID       types.BoundaryID       `json:"boundary_id"`
	ThreatScenarioID types.ThreatScenarioID `json:"threat_scenario_id"`
	GapID            *types.GapID           `json:"gap_id,omitempty"`
	Severity         types.RiskSeverity     `json:"severity"`
	SLE              float64                `json:"sle"`
	ARO              float64                `json:"aro"`
	Breakdown        SLEBreakdown           `json:"breakdown"`
	AssessmentNotes  string                 `json:"assessment_notes"`
	AssessorID       types.UserID           `json:"assessor_id"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ALE combines a single loss expectancy and an annualized rate of occurrence
// into an annualized loss expectancy. Either input being nil yields nil.
func ALE(sle, aro *float64) *float64 {
	if sle == nil || aro == nil {
		return nil
	}
	v := *sle * *aro
	return &v
}

// ALE returns the annualized loss expectancy of the assessment.
func (a *RiskAssessment) ALE() float64 {
	return a.SLE * a.ARO
}

// ValidateCore checks the core fields: severity, SLE and ARO. The severity
// may be empty while an assessment is being drafted.
func (a *RiskAssessment) ValidateCore() error {
	if a.Severity != "" && !a.Severity.IsValid() {
		return goerr.Wrap(ErrInvalidSeverity, "unknown severity", goerr.V("severity", a.Severity))
	}
	if a.SLE < 0 {
		return goerr.New("SLE must be non-negative", goerr.V("sle", a.SLE))
	}
	if a.ARO < 0 {
		return goerr.New("ARO must be non-negative", goerr.V("aro", a.ARO))
	}
	return nil
}

// CoreWarnings returns non-blocking advisories about the core fields.
func (a *RiskAssessment) CoreWarnings() []string {
	var warnings []string
	if a.ARO > AROSoftLimit {
		warnings = append(warnings, fmt.Sprintf("ARO of %s/year exceeds %d; verify the occurrence rate", formatRate(a.ARO), int(AROSoftLimit)))
	}
	return warnings
}

// ValidateBreakdown enforces the sum invariant: when the SLE is positive and
// at least one component is set, the component total must equal the SLE
// within BreakdownTolerance. The returned error carries the remaining
// deficit for display.
func (a *RiskAssessment) ValidateBreakdown() error {
	if err := a.Breakdown.Validate(); err != nil {
		return err
	}

	sum, any := a.Breakdown.Sum()
	if !any || a.SLE <= 0 {
		return nil
	}

	diff := a.SLE - sum
	if math.Abs(diff) <= BreakdownTolerance {
		return nil
	}

	return goerr.Wrap(ErrBreakdownMismatch,
		fmt.Sprintf("Remaining: $%s", formatCurrency(diff)),
		goerr.V("sle", a.SLE),
		goerr.V("breakdown_sum", sum),
		goerr.V("remaining", diff),
	)
}

// AROFrequencyText renders an annualized rate of occurrence as a
// human-readable frequency label.
func AROFrequencyText(aro float64) string {
	switch {
	case aro == 0:
		return "Not expected to occur"
	case aro < 1:
		years := math.Round(1/aro*100) / 100
		return fmt.Sprintf("Once every %s years", formatRate(years))
	case aro == 1:
		return "Once per year"
	default:
		return fmt.Sprintf("%s times per year", formatRate(aro))
	}
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCurrency(v float64) string {
	rounded := math.Round(v*100) / 100
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	return strconv.FormatFloat(rounded, 'f', 2, 64)
}
