// Package corridor finds zones along a commute route: the triangle-inequality
// corridor test, budget-constrained searches, and multi-route comparison.
package corridor

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// Weights are the corridor smart-score factor weights. They deliberately
// differ from the analysis engine's set: a commute search values security and
// infrastructure evenly, an ownership assessment is flood-led. The two sets
// are tuned independently and must not be unified.
type Weights struct {
	Security       float64 `yaml:"security" mapstructure:"security"`
	Infrastructure float64 `yaml:"infrastructure" mapstructure:"infrastructure"`
	FloodSafety    float64 `yaml:"flood_safety" mapstructure:"flood_safety"`
}

// DefaultWeights returns the standard corridor weights.
func DefaultWeights() Weights {
	return Weights{
		Security:       0.35,
		Infrastructure: 0.35,
		FloodSafety:    0.30,
	}
}

// Sum returns the sum of all component weights.
func (w Weights) Sum() float64 {
	return w.Security + w.Infrastructure + w.FloodSafety
}

// Validate checks that the weight set is internally consistent.
func (w Weights) Validate() error {
	var errs []string

	components := map[string]float64{
		"security":       w.Security,
		"infrastructure": w.Infrastructure,
		"flood_safety":   w.FloodSafety,
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
		return eris.Errorf("corridor: invalid weights: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Default search parameters. A zero SearchParams is not usable as-is: width
// must be positive, and a zero MinSecurityScore/MaxFloodRisk means exactly
// that (no floor, nothing over zero flood risk) rather than "use defaults".
const (
	DefaultWidthKm     = 5
	DefaultMinSecurity = 50
	DefaultMaxFlood    = 70
)

// DefaultParams returns the documented default corridor filters.
func DefaultParams() model.SearchParams {
	return model.SearchParams{
		CorridorWidthKm:  DefaultWidthKm,
		MinSecurityScore: DefaultMinSecurity,
		MaxFloodRisk:     DefaultMaxFlood,
	}
}
