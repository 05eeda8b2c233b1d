package types

import "fmt"

// BoundaryType classifies an organizational boundary
type BoundaryType string

const (
	BoundaryTypeDepartment BoundaryType = "DEPARTMENT"
	BoundaryTypeSystem     BoundaryType = "SYSTEM"
	BoundaryTypeLocation   BoundaryType = "LOCATION"
	BoundaryTypeOther      BoundaryType = "OTHER"
)

// AllBoundaryTypes returns all valid boundary types
func AllBoundaryTypes() []BoundaryType {
	return []BoundaryType{
		BoundaryTypeDepartment,
		BoundaryTypeSystem,
		BoundaryTypeLocation,
		BoundaryTypeOther,
	}
}

// IsValid checks if the boundary type is valid
func (t BoundaryType) IsValid() bool {
	switch t {
	case BoundaryTypeDepartment,
		BoundaryTypeSystem,
		BoundaryTypeLocation,
		BoundaryTypeOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the boundary type
func (t BoundaryType) String() string {
	return string(t)
}

// ParseBoundaryType parses a string into a BoundaryType
func ParseBoundaryType(s string) (BoundaryType, error) {
	t := BoundaryType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid boundary type: %s", s)
	}
	return t, nil
}
