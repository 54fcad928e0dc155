package agronomy

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictYieldAllFavourable(t *testing.T) {
	p := PredictYield(100, weatherAt(20), soilWith(45, 6.8, 70), 4500, 2.5)

	// health 1.0, weather 1.1, soil 1.0+0.1+0.05+0.1 = 1.25.
	// 4500 * 1.1 * 1.25 = 6187.5.
	assert.Equal(t, 6188, p.PerHectare)
	// Total comes from the unrounded per-hectare: 6187.5 * 2.5 = 15468.75.
	assert.Equal(t, 15469, p.TotalField)
	assert.Equal(t, 100, p.Confidence)

	assert.Equal(t, 100, p.Factors.Health)
	// Factor percentages are deliberately not clamped at 100.
	assert.Equal(t, 110, p.Factors.Weather)
	assert.Equal(t, 125, p.Factors.Soil)
}

func TestPredictYieldHarshConditions(t *testing.T) {
	p := PredictYield(40, weatherAt(38), soilWith(15, 8.5, 20), 4500, 2.5)

	// health 0.4, weather 0.8, soil 1.0 -> 4500 * 0.4 * 0.8 = 1440.
	assert.Equal(t, 1440, p.PerHectare)
	assert.Equal(t, 3600, p.TotalField)
	// (0.4*0.7 + 0.3) * 100 = 58.
	assert.Equal(t, 58, p.Confidence)

	assert.Equal(t, 40, p.Factors.Health)
	assert.Equal(t, 80, p.Factors.Weather)
	assert.Equal(t, 100, p.Factors.Soil)
}

func TestPredictYieldZeroScore(t *testing.T) {
	p := PredictYield(0, weatherAt(20), soilWith(45, 6.8, 70), 4500, 2.5)

	assert.Equal(t, 0, p.PerHectare)
	assert.Equal(t, 0, p.TotalField)
	assert.Equal(t, 30, p.Confidence)
}

func TestPredictYieldConfidenceInRange(t *testing.T) {
	for score := 0; score <= 100; score += 5 {
		p := PredictYield(score, weatherAt(20), soilWith(45, 6.8, 70), 4500, 2.5)
		assert.GreaterOrEqual(t, p.Confidence, 0)
		assert.LessOrEqual(t, p.Confidence, 100)
	}
}

func TestPredictYieldIsPure(t *testing.T) {
	w := weatherAt(22)
	s := soilWith(50, 7.0, 65)

	a := PredictYield(85, w, s, 4500, 2.5)
	b := PredictYield(85, w, s, 4500, 2.5)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs produced different predictions:\n%+v\n%+v", a, b)
	}
}
