package forecast

import (
	"math"
	"math/rand"
	"testing"
)

func TestClassifyRisk_Boundaries(t *testing.T) {
	cases := []struct {
		p    float64
		want RiskCategory
	}{
		{0, RiskNearCertainNoConflict},
		{0.005, RiskNearCertainNoConflict},
		{0.01, RiskNearCertainNoConflict},
		{0.0100001, RiskImprobableConflict},
		{0.25, RiskImprobableConflict},
		{0.50, RiskImprobableConflict},
		{0.500001, RiskProbableConflict},
		{0.75, RiskProbableConflict},
		{0.99, RiskProbableConflict},
		{0.990001, RiskNearCertainConflict},
		{1.0, RiskNearCertainConflict},
	}
	for _, c := range cases {
		got, err := ClassifyRisk(c.p)
		if err != nil {
			t.Fatalf("ClassifyRisk(%v) returned error: %v", c.p, err)
		}
		if got != c.want {
			t.Errorf("ClassifyRisk(%v) = %q, want %q", c.p, got, c.want)
		}
	}
}

func TestClassifyRisk_RejectsOutOfDomain(t *testing.T) {
	for _, p := range []float64{-0.001, 1.001, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := ClassifyRisk(p); err == nil {
			t.Errorf("ClassifyRisk(%v) should reject out-of-domain input", p)
		}
	}
}

func TestClassifyIntensity_Boundaries(t *testing.T) {
	cases := []struct {
		x    float64
		want IntensityCategory
	}{
		{0, IntensityZero},
		{0.1, IntensityLow},
		{10, IntensityLow},
		{10.5, IntensityModerate},
		{100, IntensityModerate},
		{101, IntensityHigh},
		{1000, IntensityHigh},
		{1001, IntensityVeryHigh},
		{10000, IntensityVeryHigh},
		{10001, IntensityCatastrophic},
	}
	for _, c := range cases {
		got, err := ClassifyIntensity(c.x)
		if err != nil {
			t.Fatalf("ClassifyIntensity(%v) returned error: %v", c.x, err)
		}
		if got != c.want {
			t.Errorf("ClassifyIntensity(%v) = %q, want %q", c.x, got, c.want)
		}
	}
}

func TestClassifyIntensity_RejectsOutOfDomain(t *testing.T) {
	for _, x := range []float64{-1, -0.0001, math.NaN(), math.Inf(1)} {
		if _, err := ClassifyIntensity(x); err == nil {
			t.Errorf("ClassifyIntensity(%v) should reject out-of-domain input", x)
		}
	}
}

// TestClassify_RoundTrip samples the input domains and checks every value
// falls inside the numeric bounds its category declares: the bands partition
// the domain with no gap or overlap.
func TestClassify_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 10000; i++ {
		p := rng.Float64()
		cat, err := ClassifyRisk(p)
		if err != nil {
			t.Fatalf("ClassifyRisk(%v): %v", p, err)
		}
		lo, hi := RiskBounds(cat)
		inBand := p <= hi && (p > lo || (cat == RiskNearCertainNoConflict && p >= 0))
		if !inBand {
			t.Fatalf("p=%v classified %q but bounds are (%v, %v]", p, cat, lo, hi)
		}
	}

	for i := 0; i < 10000; i++ {
		x := math.Exp(rng.Float64()*16) - 1 // 0 to ~8.8e6, log-spread
		cat, err := ClassifyIntensity(x)
		if err != nil {
			t.Fatalf("ClassifyIntensity(%v): %v", x, err)
		}
		lo, hi := IntensityBounds(cat)
		inBand := x <= hi && (x > lo || (cat == IntensityZero && x == 0))
		if !inBand {
			t.Fatalf("x=%v classified %q but bounds are (%v, %v]", x, cat, lo, hi)
		}
	}
}

func TestClassify_Pair(t *testing.T) {
	u := Unit{UnitID: "NGA", Probability: 0.97, PredictedIntensity: 240}
	pair, err := Classify(u)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if pair.Risk != RiskProbableConflict {
		t.Errorf("Risk = %q, want %q", pair.Risk, RiskProbableConflict)
	}
	if pair.Intensity != IntensityHigh {
		t.Errorf("Intensity = %q, want %q", pair.Intensity, IntensityHigh)
	}
}
