package forecast

import (
	"math"

	"github.com/patterson-s/fast/domain/core"
)

// ClassifyRisk maps a conflict probability to its ordinal band. Probabilities
// outside [0,1] (or non-finite) are rejected rather than clamped: clamping
// would hide upstream data bugs.
func ClassifyRisk(p float64) (RiskCategory, error) {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
		return "", core.NewInvalidInputError("probability", p)
	}
	switch {
	case p <= 0.01:
		return RiskNearCertainNoConflict, nil
	case p <= 0.50:
		return RiskImprobableConflict, nil
	case p <= 0.99:
		return RiskProbableConflict, nil
	default:
		return RiskNearCertainConflict, nil
	}
}

// ClassifyIntensity maps predicted fatalities to its ordinal band. Negative or
// non-finite input is rejected.
func ClassifyIntensity(x float64) (IntensityCategory, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return "", core.NewInvalidInputError("predicted_intensity", x)
	}
	switch {
	case x == 0:
		return IntensityZero, nil
	case x <= 10:
		return IntensityLow, nil
	case x <= 100:
		return IntensityModerate, nil
	case x <= 1000:
		return IntensityHigh, nil
	case x <= 10000:
		return IntensityVeryHigh, nil
	default:
		return IntensityCatastrophic, nil
	}
}

// Classify returns the unit's category pair.
func Classify(u Unit) (CategoryPair, error) {
	risk, err := ClassifyRisk(u.Probability)
	if err != nil {
		return CategoryPair{}, err
	}
	intensity, err := ClassifyIntensity(u.PredictedIntensity)
	if err != nil {
		return CategoryPair{}, err
	}
	return CategoryPair{Risk: risk, Intensity: intensity}, nil
}

// RiskBounds returns the closed numeric range [lo, hi] a category covers.
// The first band is inclusive at both ends; later bands exclude their lower
// bound.
func RiskBounds(c RiskCategory) (lo, hi float64) {
	switch c {
	case RiskNearCertainNoConflict:
		return 0, 0.01
	case RiskImprobableConflict:
		return 0.01, 0.50
	case RiskProbableConflict:
		return 0.50, 0.99
	default:
		return 0.99, 1.0
	}
}

// IntensityBounds returns the numeric range a category covers. The upper bound
// of the last band is +Inf.
func IntensityBounds(c IntensityCategory) (lo, hi float64) {
	switch c {
	case IntensityZero:
		return 0, 0
	case IntensityLow:
		return 0, 10
	case IntensityModerate:
		return 10, 100
	case IntensityHigh:
		return 100, 1000
	case IntensityVeryHigh:
		return 1000, 10000
	default:
		return 10000, math.Inf(1)
	}
}
