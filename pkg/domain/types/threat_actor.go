package types

import "fmt"

// ThreatActorType classifies the actor behind a threat scenario
type ThreatActorType string

const (
	ThreatActorExternal ThreatActorType = "EXTERNAL"
	ThreatActorInsider  ThreatActorType = "INSIDER"
	ThreatActorPartner  ThreatActorType = "PARTNER"
	ThreatActorNatural  ThreatActorType = "NATURAL"
	ThreatActorOther    ThreatActorType = "OTHER"
)

// AllThreatActorTypes returns all valid threat actor types
func AllThreatActorTypes() []ThreatActorType {
	return []ThreatActorType{
		ThreatActorExternal,
		ThreatActorInsider,
		ThreatActorPartner,
		ThreatActorNatural,
		ThreatActorOther,
	}
}

// IsValid checks if the threat actor type is valid
func (t ThreatActorType) IsValid() bool {
	switch t {
	case ThreatActorExternal,
		ThreatActorInsider,
		ThreatActorPartner,
		ThreatActorNatural,
		ThreatActorOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the threat actor type
func (t ThreatActorType) String() string {
	return string(t)
}

// ParseThreatActorType parses a string into a ThreatActorType
func ParseThreatActorType(s string) (ThreatActorType, error) {
	t := ThreatActorType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid threat actor type: %s", s)
	}
	return t, nil
}
