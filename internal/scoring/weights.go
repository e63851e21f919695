package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Scoring dimensions. These are the only keys a custom weight map may carry.
const (
	DimQuality       = "quality"
	DimInnovation    = "innovation"
	DimFeasibility   = "feasibility"
	DimBusinessValue = "business_value"
)

// Dimensions lists the scoring dimensions in canonical order.
func Dimensions() []string {
	return []string{DimQuality, DimInnovation, DimFeasibility, DimBusinessValue}
}

// ErrInvalidWeights marks a rejected custom weight map. Weight maps are
// never renormalized; the caller has to fix them.
var ErrInvalidWeights = errors.New("scoring: invalid weight configuration")

// Weights maps scoring dimensions to their share of the overall score.
// Dimensions absent from the map contribute nothing.
type Weights map[string]float64

// DefaultWeights gives every dimension an equal quarter share.
func DefaultWeights() Weights {
	return Weights{
		DimQuality:       0.25,
		DimInnovation:    0.25,
		DimFeasibility:   0.25,
		DimBusinessValue: 0.25,
	}
}

// Validate checks that the map names only known dimensions, carries no
// negative weights and sums to 1 within a 1% tolerance.
func (w Weights) Validate() error {
	known := map[string]bool{
		DimQuality:       true,
		DimInnovation:    true,
		DimFeasibility:   true,
		DimBusinessValue: true,
	}

	var unknown []string
	sum := 0.0
	for dim, weight := range w {
		if !known[dim] {
			unknown = append(unknown, dim)
			continue
		}
		if weight < 0 {
			return fmt.Errorf("%w: weight for %s is negative (%v)", ErrInvalidWeights, dim, weight)
		}
		sum += weight
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown dimensions %v", ErrInvalidWeights, unknown)
	}
	if math.Abs(sum-1) > 0.01 {
		return fmt.Errorf("%w: weights sum to %v, want 1±0.01", ErrInvalidWeights, sum)
	}
	return nil
}

// overallScore folds the four dimension scores into one weighted score,
// rounded to two decimals.
func overallScore(quality, innovation, feasibility, businessValue float64, w Weights) float64 {
	overall := quality*w[DimQuality] +
		innovation*w[DimInnovation] +
		feasibility*w[DimFeasibility] +
		businessValue*w[DimBusinessValue]
	return math.Round(overall*100) / 100
}

func clampScore(score float64) float64 {
	return math.Min(math.Max(score, 0), 100)
}
