package types

import "fmt"

// AnswerValue is the response recorded for a questionnaire question
type AnswerValue string

const (
	AnswerYes           AnswerValue = "YES"
	AnswerNo            AnswerValue = "NO"
	AnswerPartial       AnswerValue = "PARTIAL"
	AnswerNotApplicable AnswerValue = "NOT_APPLICABLE"
)

// AllAnswerValues returns all valid answer values
func AllAnswerValues() []AnswerValue {
	return []AnswerValue{
		AnswerYes,
		AnswerNo,
		AnswerPartial,
		AnswerNotApplicable,
	}
}

// IsValid checks if the answer value is valid
func (v AnswerValue) IsValid() bool {
	switch v {
	case AnswerYes,
		AnswerNo,
		AnswerPartial,
		AnswerNotApplicable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the answer value
func (v AnswerValue) String() string {
	return string(v)
}

// ParseAnswerValue parses a string into an AnswerValue
func ParseAnswerValue(s string) (AnswerValue, error) {
	v := AnswerValue(s)
	if !v.IsValid() {
		return "", fmt.Errorf("invalid answer value: %s", s)
	}
	return v, nil
}
