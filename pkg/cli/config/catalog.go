package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/themis/pkg/domain/model"
	"github.com/secmon-lab/themis/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Catalog represents the control catalog configuration
type Catalog struct {
	path     string
	Controls []CatalogControl `toml:"control"`
}

// CatalogControl is one catalog entry in the TOML file
type CatalogControl struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Domain      string `toml:"domain"`
}

// Validate checks if the catalog entry is valid
func (c *CatalogControl) Validate() error {
	if c.ID == "" {
		return goerr.Wrap(ErrInvalidControlID, "control ID is required")
	}
	if c.Name == "" {
		return goerr.New("control name is required", goerr.V("id", c.ID))
	}
	if c.Domain == "" {
		return goerr.New("control domain is required", goerr.V("id", c.ID))
	}
	return nil
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to the control catalog TOML file",
			Sources:     cli.EnvVars("THEMIS_CATALOG"),
			Destination: &c.path,
		},
	}
}

// Path returns the configured catalog file path
func (c *Catalog) Path() string {
	return c.path
}

// Validate checks the whole catalog, including duplicate reference codes.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, entry := range c.Controls {
		if err := entry.Validate(); err != nil {
			return goerr.Wrap(err, "invalid catalog entry")
		}
		if seen[entry.ID] {
			return goerr.Wrap(ErrDuplicateControlID, "duplicate control ID", goerr.V("id", entry.ID))
		}
		seen[entry.ID] = true
	}
	return nil
}

// Load reads and validates the catalog file. An empty path yields an empty
// catalog; the serve command then skips seeding.
func (c *Catalog) Load() error {
	if c.path == "" {
		return nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(c.path)
	if err != nil {
		return goerr.Wrap(err, "failed to read catalog file", goerr.V(ConfigPathKey, c.path))
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return goerr.Wrap(err, "failed to parse catalog TOML", goerr.V(ConfigPathKey, c.path))
	}

	if err := c.Validate(); err != nil {
		return goerr.Wrap(err, "catalog validation failed", goerr.V(ConfigPathKey, c.path))
	}

	return nil
}

// ToControls converts the catalog entries to domain controls.
func (c *Catalog) ToControls() []*model.Control {
	controls := make([]*model.Control, len(c.Controls))
	for i, entry := range c.Controls {
		controls[i] = &model.Control{
			ID:          types.ControlID(entry.ID),
			Name:        entry.Name,
			Description: entry.Description,
			Domain:      entry.Domain,
		}
	}
	return controls
}
