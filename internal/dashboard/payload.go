package dashboard

import (
	"time"

	"github.com/Hawkeyeeye/smart-farmer/internal/access"
	"github.com/Hawkeyeeye/smart-farmer/internal/agronomy"
	"github.com/Hawkeyeeye/smart-farmer/internal/farm"
	"github.com/Hawkeyeeye/smart-farmer/internal/store"
)

// Payload is the externally observable result of one refresh cycle.
// Its structure is the stable contract consumed by the UI and push
// clients; fields are redacted per subscription plan before delivery.
type Payload struct {
	Weather         farm.WeatherReading        `json:"weather"`
	Soil            farm.SoilReading           `json:"soil"`
	CropHealth      *agronomy.HealthAssessment `json:"cropHealth,omitempty"`
	YieldPrediction *agronomy.YieldPrediction  `json:"yieldPrediction,omitempty"`
	Forecast        []farm.ForecastDay         `json:"forecast,omitempty"`
	Historical      store.Series               `json:"historical"`
	Location        farm.Location              `json:"location"`
	Timestamp       time.Time                  `json:"timestamp"`
}

// Redact returns a copy of the payload with fields the plan may not see
// removed. Crop health requires crop-health, yield prediction requires
// predictions, soil chemistry (pH, NPK, conductivity) requires
// sensors-advanced, forecast requires weather.
func Redact(p Payload, plan access.Plan) Payload {
	if !access.HasAccess(plan, access.FeatureCropHealth) {
		p.CropHealth = nil
	}
	if !access.HasAccess(plan, access.FeaturePredictions) {
		p.YieldPrediction = nil
	}
	if !access.HasAccess(plan, access.FeatureWeather) {
		p.Forecast = nil
	}
	if !access.HasAccess(plan, access.FeatureSensorsAdvanced) {
		p.Soil.PH = 0
		p.Soil.NitrogenPct = 0
		p.Soil.PhosphorusPct = 0
		p.Soil.PotassiumPct = 0
		p.Soil.ConductivityDSM = 0
	}
	return p
}
