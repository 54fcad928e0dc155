package farm

import (
	"time"
)

// Location represents the farm site readings are produced for.
// City/Country must be provided; Lat/Lon are optional and may be
// resolved by geocoding when a provider needs coordinates.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for this location.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// WeatherReading is the normalized weather snapshot consumed by the
// scorers. Units are fixed: Celsius, percent, hPa, km/h, km.
type WeatherReading struct {
	TemperatureC float64   `json:"temperature"`
	HumidityPct  float64   `json:"humidity"`
	PressureHpa  float64   `json:"pressure"`
	WindSpeedKmh float64   `json:"windSpeed"`
	Description  string    `json:"description"`
	VisibilityKm float64   `json:"visibility"`
	UVIndex      float64   `json:"uvIndex"`
	Timestamp    time.Time `json:"timestamp"` // always UTC, never zero
}

// SoilReading is the normalized soil snapshot. NPK values use a 0-100
// heuristic scale; conductivity is dS/m.
type SoilReading struct {
	MoisturePct     float64   `json:"moisture"`
	TemperatureC    float64   `json:"temperature"`
	PH              float64   `json:"ph"`
	NitrogenPct     float64   `json:"nitrogen"`
	PhosphorusPct   float64   `json:"phosphorus"`
	PotassiumPct    float64   `json:"potassium"`
	ConductivityDSM float64   `json:"conductivity"`
	Timestamp       time.Time `json:"timestamp"`
}

// RawWeather is a loosely-populated upstream reading before
// normalization. Pointer fields distinguish "absent" from zero so the
// fallback decision is a typed branch rather than an optional-field
// guess.
type RawWeather struct {
	SourceName string

	TemperatureC *float64
	HumidityPct  *float64
	PressureHpa  *float64
	WindSpeedMS  *float64 // meters per second, as most upstreams report
	VisibilityM  *float64 // meters
	UVIndex      *float64
	Description  string
	Timestamp    time.Time
}

// RawSoil mirrors RawWeather for soil probes.
type RawSoil struct {
	SourceName string

	MoisturePct     *float64
	TemperatureC    *float64
	PH              *float64
	NitrogenPct     *float64
	PhosphorusPct   *float64
	PotassiumPct    *float64
	ConductivityDSM *float64
	Timestamp       time.Time
}

// ForecastDay is one day of the aggregated weather forecast.
type ForecastDay struct {
	Date        time.Time `json:"date"` // midnight UTC
	TempMinC    float64   `json:"tempMin"`
	TempMaxC    float64   `json:"tempMax"`
	HumidityPct float64   `json:"humidity"`
	Description string    `json:"description"`
}
