package model

import "github.com/secmon-lab/themis/pkg/domain/types"

// Control is a catalog compliance requirement (e.g. an ISO 27001 Annex A
// control) that can be applied to boundaries. The catalog is global and
// read-only from the workflow's perspective; it is seeded from the catalog
// configuration at startup.
type Control struct {
	// ID is the catalog reference code, e.g. "A.5.1".
	ID          types.ControlID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Domain      string          `json:"domain"`
}

// Matches reports whether the control matches a case-insensitive substring
// query over its reference code, name, description or domain.
func (c *Control) Matches(query string) bool {
	if query == "" {
		return true
	}
	return containsFold(c.ID.String(), query) ||
		containsFold(c.Name, query) ||
		containsFold(c.Description, query) ||
		containsFold(c.Domain, query)
}

// ControlGroup is a set of catalog controls sharing a domain, used by the
// controls panel listing.
type ControlGroup struct {
	Domain   string     `json:"domain"`
	Controls []*Control `json:"controls"`
}
