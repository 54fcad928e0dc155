package farm

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

var descriptions = []string{
	"clear sky",
	"few clouds",
	"scattered clouds",
	"overcast clouds",
	"light rain",
}

// Generator produces plausible synthetic readings for degraded mode and
// for sensors that have no real upstream (soil probes). Values follow a
// mild random walk around an agronomically reasonable baseline so
// consecutive cycles look like a live feed rather than white noise.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand

	// walk state
	temp     float64
	humidity float64
	moisture float64
}

// NewGenerator creates a Generator. The seed is fixed by the caller so
// tests can be deterministic.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rnd:      rand.New(rand.NewSource(seed)),
		temp:     24,
		humidity: 60,
		moisture: 45,
	}
}

// step moves a walk value by up to ±delta, keeping it within [lo, hi].
func (g *Generator) step(v, delta, lo, hi float64) float64 {
	v += (g.rnd.Float64()*2 - 1) * delta
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// RawWeather returns a fully-populated synthetic weather reading.
func (g *Generator) RawWeather(now time.Time) RawWeather {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.temp = g.step(g.temp, 1.5, 12, 36)
	g.humidity = g.step(g.humidity, 4, 30, 95)

	pressure := 1013 + (g.rnd.Float64()*2-1)*10
	windMS := 1 + g.rnd.Float64()*6
	visibilityM := 7000 + g.rnd.Float64()*3000
	uv := 2 + g.rnd.Float64()*7
	desc := descriptions[g.rnd.Intn(len(descriptions))]

	return RawWeather{
		SourceName:   "synthetic",
		TemperatureC: ptr(round1(g.temp)),
		HumidityPct:  ptr(round1(g.humidity)),
		PressureHpa:  ptr(round1(pressure)),
		WindSpeedMS:  ptr(round1(windMS)),
		VisibilityM:  ptr(round1(visibilityM)),
		UVIndex:      ptr(round1(uv)),
		Description:  desc,
		Timestamp:    now.UTC(),
	}
}

// RawSoil returns a fully-populated synthetic soil reading.
func (g *Generator) RawSoil(now time.Time) RawSoil {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.moisture = g.step(g.moisture, 3, 10, 85)

	soilTemp := g.temp - 3 + (g.rnd.Float64()*2-1)*1.5
	ph := 6.0 + (g.rnd.Float64()*2-1)*1.2
	n := 40 + g.rnd.Float64()*40
	p := 25 + g.rnd.Float64()*35
	k := 30 + g.rnd.Float64()*40
	cond := 0.8 + g.rnd.Float64()*0.8

	return RawSoil{
		SourceName:      "synthetic",
		MoisturePct:     ptr(round1(g.moisture)),
		TemperatureC:    ptr(round1(soilTemp)),
		PH:              ptr(round1(ph)),
		NitrogenPct:     ptr(round1(n)),
		PhosphorusPct:   ptr(round1(p)),
		PotassiumPct:    ptr(round1(k)),
		ConductivityDSM: ptr(round2(cond)),
		Timestamp:       now.UTC(),
	}
}

// Forecast returns a synthetic multi-day forecast anchored on the
// current walk state, one entry per day starting tomorrow.
func (g *Generator) Forecast(now time.Time, days int) []ForecastDay {
	g.mu.Lock()
	defer g.mu.Unlock()

	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]ForecastDay, 0, days)
	temp := g.temp
	humidity := g.humidity

	for i := 1; i <= days; i++ {
		temp = g.step(temp, 2, 12, 36)
		humidity = g.step(humidity, 5, 30, 95)
		spread := 3 + g.rnd.Float64()*4

		out = append(out, ForecastDay{
			Date:        base.AddDate(0, 0, i),
			TempMinC:    round1(temp - spread),
			TempMaxC:    round1(temp + spread),
			HumidityPct: round1(humidity),
			Description: descriptions[g.rnd.Intn(len(descriptions))],
		})
	}
	return out
}

func ptr(v float64) *float64 { return &v }

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
