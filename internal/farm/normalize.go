package farm

import (
	"log"
	"time"

	"github.com/Hawkeyeeye/smart-farmer/internal/common"
)

// Normalizer converts raw upstream readings into the fixed reading
// schema. It never fails: an absent or incomplete raw reading is
// replaced with a synthetic one, because downstream scorers must always
// receive a fully-populated snapshot.
type Normalizer struct {
	gen *Generator
}

// NewNormalizer creates a Normalizer backed by the given generator for
// fallback readings.
func NewNormalizer(gen *Generator) *Normalizer {
	return &Normalizer{gen: gen}
}

// Weather normalizes a raw weather reading. A nil raw, or one missing
// temperature, humidity or pressure, triggers the synthetic fallback.
// Units are converted to the fixed schema: wind m/s -> km/h,
// visibility m -> km. Percentages are clamped to [0,100].
func (n *Normalizer) Weather(raw *RawWeather, now time.Time) WeatherReading {
	if raw == nil || raw.TemperatureC == nil || raw.HumidityPct == nil || raw.PressureHpa == nil {
		if raw != nil {
			log.Printf("normalizer: incomplete weather reading from %s; using synthetic fallback", raw.SourceName)
		}
		fallback := n.gen.RawWeather(now)
		raw = &fallback
	}

	r := WeatherReading{
		TemperatureC: *raw.TemperatureC,
		HumidityPct:  clampPct(*raw.HumidityPct),
		PressureHpa:  *raw.PressureHpa,
		Description:  raw.Description,
		Timestamp:    raw.Timestamp.UTC(),
	}

	if raw.WindSpeedMS != nil {
		r.WindSpeedKmh = round1(*raw.WindSpeedMS * 3.6)
	}
	if r.WindSpeedKmh < 0 {
		r.WindSpeedKmh = 0
	}
	if raw.VisibilityM != nil {
		r.VisibilityKm = round1(*raw.VisibilityM / 1000)
	}
	if raw.UVIndex != nil {
		r.UVIndex = *raw.UVIndex
	} else {
		r.UVIndex = estimateUV(raw.Description)
	}
	if r.UVIndex < 0 {
		r.UVIndex = 0
	}

	if r.Timestamp.IsZero() {
		r.Timestamp = now.UTC()
	}
	return r
}

// Soil normalizes a raw soil reading with the same fallback contract as
// Weather. Moisture and NPK are clamped to [0,100].
func (n *Normalizer) Soil(raw *RawSoil, now time.Time) SoilReading {
	if raw == nil || raw.MoisturePct == nil || raw.PH == nil || raw.NitrogenPct == nil {
		if raw != nil {
			log.Printf("normalizer: incomplete soil reading from %s; using synthetic fallback", raw.SourceName)
		}
		fallback := n.gen.RawSoil(now)
		raw = &fallback
	}

	r := SoilReading{
		MoisturePct: clampPct(*raw.MoisturePct),
		PH:          *raw.PH,
		NitrogenPct: clampPct(*raw.NitrogenPct),
		Timestamp:   raw.Timestamp.UTC(),
	}

	if raw.TemperatureC != nil {
		r.TemperatureC = *raw.TemperatureC
	}
	if raw.PhosphorusPct != nil {
		r.PhosphorusPct = clampPct(*raw.PhosphorusPct)
	}
	if raw.PotassiumPct != nil {
		r.PotassiumPct = clampPct(*raw.PotassiumPct)
	}
	if raw.ConductivityDSM != nil && *raw.ConductivityDSM > 0 {
		r.ConductivityDSM = *raw.ConductivityDSM
	}

	if r.Timestamp.IsZero() {
		r.Timestamp = now.UTC()
	}
	return r
}

// estimateUV maps a condition description to a rough midday UV index
// when the upstream does not report one.
func estimateUV(desc string) float64 {
	switch {
	case common.HasAny(desc, "rain", "drizzle", "storm", "snow"):
		return 2
	case common.HasAny(desc, "overcast", "mist", "fog"):
		return 3
	case common.HasAny(desc, "cloud"):
		return 5
	default:
		return 7
	}
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
