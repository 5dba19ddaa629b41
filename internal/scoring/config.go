// Package scoring implements the weighted property risk assessment and the
// holding-period ROI projection over zone reference records.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Weights are the composite risk-score factor weights, as fractions that must
// sum to 1. They are applied as-is, never renormalized: a set that does not
// sum to 1 is rejected by Validate, not corrected.
type Weights struct {
	FloodSafety    float64 `yaml:"flood_safety" mapstructure:"flood_safety"`
	Security       float64 `yaml:"security" mapstructure:"security"`
	Infrastructure float64 `yaml:"infrastructure" mapstructure:"infrastructure"`
}

// DefaultWeights returns the standard composite weights. Flood exposure
// dominates because it is the risk Lagos buyers most often underestimate.
func DefaultWeights() Weights {
	return Weights{
		FloodSafety:    0.40,
		Security:       0.30,
		Infrastructure: 0.30,
	}
}

// Sum returns the sum of all component weights.
func (w Weights) Sum() float64 {
	return w.FloodSafety + w.Security + w.Infrastructure
}

// Validate checks that the weight set is internally consistent.
func (w Weights) Validate() error {
	var errs []string

	components := map[string]float64{
		"flood_safety":   w.FloodSafety,
		"security":       w.Security,
		"infrastructure": w.Infrastructure,
	}
	for name, v := range components {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	if sum := w.Sum(); math.Abs(sum-1) > 1e-9 {
		errs = append(errs, fmt.Sprintf("weights must sum to 1, got %v", sum))
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: invalid weights: %s", strings.Join(errs, "; "))
	}
	return nil
}
