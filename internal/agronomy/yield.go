package agronomy

import (
	"math"

	"github.com/Hawkeyeeye/smart-farmer/internal/farm"
)

// YieldFactors reports each multiplier as a rounded percentage. These
// are intentionally NOT clamped to 100: a favourable weather multiplier
// of 1.1 reports as 110.
type YieldFactors struct {
	Health  int `json:"health"`
	Weather int `json:"weather"`
	Soil    int `json:"soil"`
}

// YieldPrediction is the output of the multiplicative yield model.
type YieldPrediction struct {
	PerHectare int          `json:"perHectare"` // kg/ha
	TotalField int          `json:"totalField"` // kg across the whole field
	Confidence int          `json:"confidence"` // always within [0,100]
	Factors    YieldFactors `json:"factors"`
}

// PredictYield derives a yield estimate from the health score and the
// same readings the scorer saw. Pure arithmetic over already-validated
// inputs; there are no error conditions.
//
// TotalField is computed from the unrounded per-hectare value so the
// two reported numbers stay consistent with each other.
func PredictYield(score int, w farm.WeatherReading, s farm.SoilReading, baseYieldKgHa, fieldSizeHa float64) YieldPrediction {
	healthMult := float64(score) / 100

	weatherMult := 1.0
	switch {
	case w.TemperatureC >= 15 && w.TemperatureC <= 25:
		weatherMult += 0.1
	case w.TemperatureC < 10 || w.TemperatureC > 35:
		weatherMult -= 0.2
	}

	soilMult := 1.0
	if s.MoisturePct >= 30 && s.MoisturePct <= 60 {
		soilMult += 0.1
	}
	if s.PH >= 6.0 && s.PH <= 7.5 {
		soilMult += 0.05
	}
	if s.NitrogenPct > 60 {
		soilMult += 0.1
	}

	perHectare := baseYieldKgHa * healthMult * weatherMult * soilMult

	return YieldPrediction{
		PerHectare: roundInt(perHectare),
		TotalField: roundInt(perHectare * fieldSizeHa),
		Confidence: roundInt((healthMult*0.7 + 0.3) * 100),
		Factors: YieldFactors{
			Health:  roundInt(healthMult * 100),
			Weather: roundInt(weatherMult * 100),
			Soil:    roundInt(soilMult * 100),
		},
	}
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
