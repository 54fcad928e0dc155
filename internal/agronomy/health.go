package agronomy

import (
	"fmt"
	"math"

	"github.com/Hawkeyeeye/smart-farmer/internal/farm"
)

// FactorStatus classifies a single environmental factor.
type FactorStatus string

const (
	StatusOptimal    FactorStatus = "optimal"
	StatusModerate   FactorStatus = "moderate"
	StatusSuboptimal FactorStatus = "suboptimal"
	StatusCritical   FactorStatus = "critical"
	StatusExcessive  FactorStatus = "excessive"
)

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Factor is the per-factor breakdown entry of an assessment.
type Factor struct {
	Status FactorStatus `json:"status"`
	Value  float64      `json:"value"`
}

// Recommendation is an actionable item derived from a factor reading.
type Recommendation struct {
	Type     string   `json:"type"`
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
	Action   string   `json:"action"`
}

// GrowthStage describes where the crop is in its lifecycle.
type GrowthStage struct {
	Name     string `json:"name"`
	Progress int    `json:"progress"` // 0-100 position within the stage
	Optimal  bool   `json:"optimal"`  // elapsed days meet the stage minimum
}

// HealthAssessment is the full crop-health result for one cycle.
type HealthAssessment struct {
	Score            int               `json:"score"` // always within [0,100]
	Factors          map[string]Factor `json:"factors"`
	Recommendations  []Recommendation  `json:"recommendations"`
	GrowthStage      GrowthStage       `json:"growthStage"`
	DaysFromPlanting int               `json:"daysFromPlanting"`
	ExpectedHarvest  int               `json:"expectedHarvest"` // days remaining, floored at 0
}

// harvestCycleDays is the full crop cycle length; harvest readiness is
// reached at the end of maturation.
const harvestCycleDays = 120

// AssessHealth converts normalized weather and soil readings plus days
// since planting into a health score, per-factor statuses and ordered
// recommendations. Pure: identical inputs yield identical output.
//
// The point system starts from a base of 70 and adjusts per factor.
// Evaluation order (temperature, moisture, pH, nitrogen) fixes the
// recommendation order; no other sorting is applied. Adequate N/P/K
// earns no bonus, only deficiency penalizes.
func AssessHealth(w farm.WeatherReading, s farm.SoilReading, daysFromPlanting int) HealthAssessment {
	score := 70.0
	factors := make(map[string]Factor, 4)
	recs := make([]Recommendation, 0, 4)

	// Temperature.
	switch {
	case w.TemperatureC >= 15 && w.TemperatureC <= 25:
		score += 15
		factors["temperature"] = Factor{Status: StatusOptimal, Value: w.TemperatureC}
	case w.TemperatureC < 10 || w.TemperatureC > 35:
		score -= 20
		factors["temperature"] = Factor{Status: StatusCritical, Value: w.TemperatureC}
		recs = append(recs, Recommendation{
			Type:     "temperature",
			Priority: PriorityHigh,
			Message:  fmt.Sprintf("Temperature %.1f°C is outside the crop's tolerance range", w.TemperatureC),
			Action:   "Consider protective measures such as shade netting or row covers",
		})
	default:
		score += 5
		factors["temperature"] = Factor{Status: StatusModerate, Value: w.TemperatureC}
	}

	// Soil moisture.
	switch {
	case s.MoisturePct >= 30 && s.MoisturePct <= 60:
		score += 15
		factors["moisture"] = Factor{Status: StatusOptimal, Value: s.MoisturePct}
	case s.MoisturePct < 20:
		score -= 25
		factors["moisture"] = Factor{Status: StatusCritical, Value: s.MoisturePct}
		liters := (35 - s.MoisturePct) * 15
		recs = append(recs, Recommendation{
			Type:     "irrigation",
			Priority: PriorityHigh,
			Message:  fmt.Sprintf("Soil moisture %.1f%% is critically low", s.MoisturePct),
			Action:   fmt.Sprintf("Irrigate with %.0f L/m² of water", liters),
		})
	case s.MoisturePct > 75:
		score -= 15
		factors["moisture"] = Factor{Status: StatusExcessive, Value: s.MoisturePct}
		recs = append(recs, Recommendation{
			Type:     "drainage",
			Priority: PriorityMedium,
			Message:  fmt.Sprintf("Soil moisture %.1f%% is excessive", s.MoisturePct),
			Action:   "Improve field drainage and pause irrigation",
		})
	default:
		factors["moisture"] = Factor{Status: StatusModerate, Value: s.MoisturePct}
	}

	// Soil pH.
	if s.PH >= 6.0 && s.PH <= 7.5 {
		score += 10
		factors["ph"] = Factor{Status: StatusOptimal, Value: s.PH}
	} else {
		score -= 10
		factors["ph"] = Factor{Status: StatusSuboptimal, Value: s.PH}
		action := "Apply sulfur or organic matter to lower pH"
		if s.PH < 6.0 {
			action = "Apply agricultural lime to raise pH"
		}
		recs = append(recs, Recommendation{
			Type:     "soil",
			Priority: PriorityMedium,
			Message:  fmt.Sprintf("Soil pH %.1f is outside the optimal 6.0-7.5 range", s.PH),
			Action:   action,
		})
	}

	// Nitrogen. Only deficiency adjusts the score.
	if s.NitrogenPct < 40 {
		score -= 15
		factors["nitrogen"] = Factor{Status: StatusSuboptimal, Value: s.NitrogenPct}
		recs = append(recs, Recommendation{
			Type:     "fertilizer",
			Priority: PriorityHigh,
			Message:  fmt.Sprintf("Nitrogen level %.1f%% is deficient", s.NitrogenPct),
			Action:   "Apply urea at 120 kg/ha",
		})
	} else {
		factors["nitrogen"] = Factor{Status: StatusOptimal, Value: s.NitrogenPct}
	}

	if daysFromPlanting < 0 {
		daysFromPlanting = 0
	}

	harvest := harvestCycleDays - daysFromPlanting
	if harvest < 0 {
		harvest = 0
	}

	return HealthAssessment{
		Score:            clampScore(score),
		Factors:          factors,
		Recommendations:  recs,
		GrowthStage:      StageForDays(daysFromPlanting),
		DaysFromPlanting: daysFromPlanting,
		ExpectedHarvest:  harvest,
	}
}

// stageSpan defines one growth stage as a [start,end) day window plus
// the elapsed-days minimum for the stage to be considered on track.
type stageSpan struct {
	name    string
	start   int
	end     int
	minDays int
}

// Day 45 still counts as vegetative; the reproductive window opens on
// day 46.
var stages = []stageSpan{
	{name: "Germination", start: 0, end: 15, minDays: 7},
	{name: "Vegetative", start: 15, end: 46, minDays: 30},
	{name: "Reproductive", start: 46, end: 75, minDays: 60},
	{name: "Maturation", start: 75, end: 120, minDays: 90},
}

// StageForDays maps days-since-planting to a growth stage with a
// progress percentage within the stage.
func StageForDays(days int) GrowthStage {
	if days < 0 {
		days = 0
	}

	for _, st := range stages {
		if days < st.end {
			progress := float64(days-st.start) / float64(st.end-st.start) * 100
			return GrowthStage{
				Name:     st.name,
				Progress: clampScore(progress),
				Optimal:  days >= st.minDays,
			}
		}
	}

	return GrowthStage{Name: "Ready for Harvest", Progress: 100, Optimal: true}
}

// clampScore rounds to the nearest integer and clamps to [0,100].
func clampScore(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
