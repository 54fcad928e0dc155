package agronomy

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Hawkeyeeye/smart-farmer/internal/farm"
)

func weatherAt(temp float64) farm.WeatherReading {
	return farm.WeatherReading{
		TemperatureC: temp,
		HumidityPct:  60,
		PressureHpa:  1013,
		Timestamp:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func soilWith(moisture, ph, nitrogen float64) farm.SoilReading {
	return farm.SoilReading{
		MoisturePct: moisture,
		PH:          ph,
		NitrogenPct: nitrogen,
		Timestamp:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAssessHealthAllOptimal(t *testing.T) {
	a := AssessHealth(weatherAt(20), soilWith(45, 6.8, 70), 45)

	// 70 base +15 temp +15 moisture +10 pH, nothing for adequate N.
	assert.Equal(t, 100, a.Score)
	assert.Equal(t, "Vegetative", a.GrowthStage.Name)
	assert.Equal(t, 45, a.DaysFromPlanting)
	assert.Equal(t, 75, a.ExpectedHarvest)
	assert.Empty(t, a.Recommendations)

	assert.Equal(t, StatusOptimal, a.Factors["temperature"].Status)
	assert.Equal(t, StatusOptimal, a.Factors["moisture"].Status)
	assert.Equal(t, StatusOptimal, a.Factors["ph"].Status)
	assert.Equal(t, StatusOptimal, a.Factors["nitrogen"].Status)
}

func TestAssessHealthAllCritical(t *testing.T) {
	a := AssessHealth(weatherAt(38), soilWith(15, 8.5, 20), 10)

	// 70 -20 -25 -10 -15 = 0; already at the floor, no clamping slack.
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, "Germination", a.GrowthStage.Name)

	if assert.Len(t, a.Recommendations, 4) {
		assert.Equal(t, "temperature", a.Recommendations[0].Type)
		assert.Equal(t, PriorityHigh, a.Recommendations[0].Priority)

		assert.Equal(t, "irrigation", a.Recommendations[1].Type)
		assert.Equal(t, PriorityHigh, a.Recommendations[1].Priority)
		// (35 - 15) * 15 = 300 L/m².
		assert.Contains(t, a.Recommendations[1].Action, "300 L/m²")

		assert.Equal(t, "soil", a.Recommendations[2].Type)
		assert.Equal(t, PriorityMedium, a.Recommendations[2].Priority)
		assert.Contains(t, a.Recommendations[2].Action, "sulfur")

		assert.Equal(t, "fertilizer", a.Recommendations[3].Type)
		assert.Equal(t, PriorityHigh, a.Recommendations[3].Priority)
		assert.Contains(t, a.Recommendations[3].Action, "urea")
	}

	assert.Equal(t, StatusCritical, a.Factors["temperature"].Status)
	assert.Equal(t, StatusCritical, a.Factors["moisture"].Status)
	assert.Equal(t, StatusSuboptimal, a.Factors["ph"].Status)
	assert.Equal(t, StatusSuboptimal, a.Factors["nitrogen"].Status)
}

func TestAssessHealthExcessiveMoisture(t *testing.T) {
	a := AssessHealth(weatherAt(20), soilWith(80, 6.5, 70), 30)

	// 70 +15 temp -15 excessive moisture +10 pH = 80.
	assert.Equal(t, 80, a.Score)
	assert.Equal(t, StatusExcessive, a.Factors["moisture"].Status)

	if assert.Len(t, a.Recommendations, 1) {
		assert.Equal(t, "drainage", a.Recommendations[0].Type)
		assert.Equal(t, PriorityMedium, a.Recommendations[0].Priority)
	}
}

func TestAssessHealthLowPHRecommendsLime(t *testing.T) {
	a := AssessHealth(weatherAt(20), soilWith(45, 5.2, 70), 30)

	if assert.Len(t, a.Recommendations, 1) {
		assert.Equal(t, "soil", a.Recommendations[0].Type)
		assert.Contains(t, a.Recommendations[0].Action, "lime")
	}
}

func TestAssessHealthScoreAlwaysInRange(t *testing.T) {
	temps := []float64{-10, 5, 12, 20, 30, 38, 50}
	moistures := []float64{0, 10, 25, 45, 70, 80, 100}
	phs := []float64{3, 5.5, 6.5, 7.5, 9}
	nitrogens := []float64{0, 20, 40, 60, 100}

	for _, temp := range temps {
		for _, m := range moistures {
			for _, ph := range phs {
				for _, n := range nitrogens {
					a := AssessHealth(weatherAt(temp), soilWith(m, ph, n), 45)
					if a.Score < 0 || a.Score > 100 {
						t.Fatalf("score %d out of range for temp=%v moisture=%v ph=%v n=%v",
							a.Score, temp, m, ph, n)
					}
				}
			}
		}
	}
}

func TestAssessHealthIsPure(t *testing.T) {
	w := weatherAt(28)
	s := soilWith(22, 5.5, 35)

	a := AssessHealth(w, s, 60)
	b := AssessHealth(w, s, 60)

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs produced different assessments:\n%+v\n%+v", a, b)
	}
}

func TestStageForDays(t *testing.T) {
	tests := []struct {
		days    int
		name    string
		optimal bool
	}{
		{0, "Germination", false},
		{10, "Germination", true},
		{14, "Germination", true},
		{15, "Vegetative", false},
		{45, "Vegetative", true},
		{46, "Reproductive", false},
		{74, "Reproductive", true},
		{75, "Maturation", false},
		{119, "Maturation", true},
		{120, "Ready for Harvest", true},
		{500, "Ready for Harvest", true},
	}

	for _, tt := range tests {
		st := StageForDays(tt.days)
		assert.Equalf(t, tt.name, st.Name, "days=%d", tt.days)
		assert.Equalf(t, tt.optimal, st.Optimal, "days=%d", tt.days)
		assert.GreaterOrEqual(t, st.Progress, 0)
		assert.LessOrEqual(t, st.Progress, 100)
	}
}

func TestExpectedHarvestFloorsAtZero(t *testing.T) {
	a := AssessHealth(weatherAt(20), soilWith(45, 6.8, 70), 200)
	assert.Equal(t, 0, a.ExpectedHarvest)
	assert.Equal(t, "Ready for Harvest", a.GrowthStage.Name)
}
