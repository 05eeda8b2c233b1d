package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/themis/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Workflow represents the workflow tuning configuration: the phase policy
// and the ALE bucket thresholds.
type Workflow struct {
	path string

	Policy     *domainConfig.PhasePolicy   `toml:"phases"`
	Thresholds *domainConfig.ALEThresholds `toml:"ale_thresholds"`
}

// Flags returns CLI flags for workflow configuration
func (w *Workflow) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workflow",
			Usage:       "Path to the workflow policy TOML file (defaults apply when omitted)",
			Sources:     cli.EnvVars("THEMIS_WORKFLOW"),
			Destination: &w.path,
		},
	}
}

// Path returns the configured workflow file path
func (w *Workflow) Path() string {
	return w.path
}

// Load reads and validates the workflow file. An empty path keeps the
// production defaults.
func (w *Workflow) Load() error {
	if w.path == "" {
		return nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(w.path)
	if err != nil {
		return goerr.Wrap(err, "failed to read workflow file", goerr.V(ConfigPathKey, w.path))
	}

	if err := toml.Unmarshal(data, w); err != nil {
		return goerr.Wrap(err, "failed to parse workflow TOML", goerr.V(ConfigPathKey, w.path))
	}

	if err := w.Validate(); err != nil {
		return goerr.Wrap(err, "workflow validation failed", goerr.V(ConfigPathKey, w.path))
	}

	return nil
}

// Validate checks the configured policy and thresholds.
func (w *Workflow) Validate() error {
	if w.Policy != nil {
		if err := w.Policy.Validate(); err != nil {
			return err
		}
	}
	if w.Thresholds != nil {
		if err := w.Thresholds.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PhasePolicy returns the configured policy, or the default.
func (w *Workflow) PhasePolicy() *domainConfig.PhasePolicy {
	if w.Policy == nil {
		return domainConfig.DefaultPhasePolicy()
	}
	return w.Policy
}

// ALEThresholds returns the configured thresholds, or the default.
func (w *Workflow) ALEThresholds() *domainConfig.ALEThresholds {
	if w.Thresholds == nil {
		return domainConfig.DefaultALEThresholds()
	}
	return w.Thresholds
}
