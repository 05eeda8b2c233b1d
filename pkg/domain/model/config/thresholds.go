package config

import "github.com/m-mizutani/goerr/v2"

// ALEThresholds define the annualized-loss-expectancy cutoffs used to bucket
// register rows into severity badges.
type ALEThresholds struct {
	High   float64 `toml:"high"`
	Medium float64 `toml:"medium"`
}

// DefaultALEThresholds returns the production cutoffs.
func DefaultALEThresholds() *ALEThresholds {
	return &ALEThresholds{
		High:   50000,
		Medium: 30000,
	}
}

// Validate checks the threshold ordering.
func (t *ALEThresholds) Validate() error {
	if t.High < 0 || t.Medium < 0 {
		return goerr.New("ALE thresholds must be non-negative",
			goerr.V("high", t.High), goerr.V("medium", t.Medium))
	}
	if t.Medium > t.High {
		return goerr.New("medium ALE threshold must not exceed high threshold",
			goerr.V("high", t.High), goerr.V("medium", t.Medium))
	}
	return nil
}
