package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Hawkeyeeye/smart-farmer/internal/agronomy"
	"github.com/Hawkeyeeye/smart-farmer/internal/farm"
	"github.com/Hawkeyeeye/smart-farmer/internal/store"
)

// forecastDays is how many days of forecast each payload carries.
const forecastDays = 5

// FarmProfile is the static configuration of the field the dashboard
// reports on.
type FarmProfile struct {
	Location      farm.Location
	BaseYieldKgHa float64
	FieldSizeHa   float64
	PlantingDate  time.Time
}

// Service runs the refresh cycle: fetch (or fall back) -> normalize ->
// assess -> predict -> publish. Each cycle is one synchronous unit of
// work; the scheduler never overlaps ticks.
type Service struct {
	providers  []farm.Provider
	normalizer *farm.Normalizer
	gen        *farm.Generator
	history    *store.History
	hub        *Hub
	profile    FarmProfile

	now func() time.Time

	mu     sync.RWMutex
	latest *Payload
}

// NewService creates a Service. The provider list may be empty, in
// which case every cycle runs on synthetic readings.
func NewService(providers []farm.Provider, gen *farm.Generator, history *store.History, hub *Hub, profile FarmProfile) *Service {
	return &Service{
		providers:  providers,
		normalizer: farm.NewNormalizer(gen),
		gen:        gen,
		history:    history,
		hub:        hub,
		profile:    profile,
		now:        time.Now,
	}
}

// Refresh runs one full cycle and returns the produced payload. It
// never fails: upstream errors degrade to synthetic readings.
func (s *Service) Refresh(ctx context.Context) Payload {
	now := s.now().UTC()

	raw := s.fetchWeather(ctx)
	weather := s.normalizer.Weather(raw, now)

	rawSoil := s.gen.RawSoil(now)
	soil := s.normalizer.Soil(&rawSoil, now)

	days := daysSince(s.profile.PlantingDate, now)
	health := agronomy.AssessHealth(weather, soil, days)
	yield := agronomy.PredictYield(health.Score, weather, soil, s.profile.BaseYieldKgHa, s.profile.FieldSizeHa)

	forecast := s.fetchForecast(ctx, now)

	s.history.Append(store.Sample{
		Timestamp:       now,
		TemperatureC:    weather.TemperatureC,
		HumidityPct:     weather.HumidityPct,
		SoilMoisturePct: soil.MoisturePct,
	})

	payload := Payload{
		Weather:         weather,
		Soil:            soil,
		CropHealth:      &health,
		YieldPrediction: &yield,
		Forecast:        forecast,
		Historical:      s.history.Series(),
		Location:        s.profile.Location,
		Timestamp:       now,
	}

	s.mu.Lock()
	s.latest = &payload
	s.mu.Unlock()

	s.hub.Broadcast(payload)
	return payload
}

// Latest returns the most recent payload, unredacted. The second value
// is false before the first cycle completes.
func (s *Service) Latest() (Payload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return Payload{}, false
	}
	return *s.latest, true
}

// fetchWeather asks each provider in order and returns the first
// successful raw reading, or nil when all fail.
func (s *Service) fetchWeather(ctx context.Context) *farm.RawWeather {
	for _, p := range s.providers {
		raw, err := p.Fetch(ctx, s.profile.Location)
		if err != nil {
			log.Printf("dashboard: provider %s fetch failed for %s: %v", p.Name(), s.profile.Location.Key(), err)
			continue
		}
		return &raw
	}
	return nil
}

// fetchForecast builds a daily forecast from the first provider that
// supports forecasts, falling back to a synthetic one.
func (s *Service) fetchForecast(ctx context.Context, now time.Time) []farm.ForecastDay {
	for _, p := range s.providers {
		fp, ok := p.(farm.ForecastProvider)
		if !ok {
			continue
		}

		raws, err := fp.FetchForecast(ctx, s.profile.Location, forecastDays)
		if err != nil {
			log.Printf("dashboard: provider %s forecast failed for %s: %v", p.Name(), s.profile.Location.Key(), err)
			continue
		}
		if fc := aggregateForecast(raws, forecastDays); len(fc) > 0 {
			return fc
		}
	}
	return s.gen.Forecast(now, forecastDays)
}

// aggregateForecast buckets raw readings by UTC day and reduces each
// bucket to min/max temperature and mean humidity.
func aggregateForecast(raws []farm.RawWeather, days int) []farm.ForecastDay {
	type bucket struct {
		date        time.Time
		tempMin     float64
		tempMax     float64
		humiditySum float64
		count       int
		description string
	}

	buckets := make(map[string]*bucket)
	var keys []string

	for _, r := range raws {
		if r.TemperatureC == nil {
			continue
		}
		ts := r.Timestamp.UTC()
		key := ts.Format("2006-01-02")

		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				date:    time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
				tempMin: *r.TemperatureC,
				tempMax: *r.TemperatureC,
			}
			buckets[key] = b
			keys = append(keys, key)
		}

		if *r.TemperatureC < b.tempMin {
			b.tempMin = *r.TemperatureC
		}
		if *r.TemperatureC > b.tempMax {
			b.tempMax = *r.TemperatureC
		}
		if r.HumidityPct != nil {
			b.humiditySum += *r.HumidityPct
			b.count++
		}
		if b.description == "" && r.Description != "" {
			b.description = r.Description
		}
	}

	// Map iteration order is random; keys preserves arrival order, and
	// forecast feeds arrive chronologically.
	out := make([]farm.ForecastDay, 0, days)
	for _, key := range keys {
		if len(out) >= days {
			break
		}
		b := buckets[key]
		day := farm.ForecastDay{
			Date:        b.date,
			TempMinC:    b.tempMin,
			TempMaxC:    b.tempMax,
			Description: b.description,
		}
		if b.count > 0 {
			day.HumidityPct = b.humiditySum / float64(b.count)
		}
		out = append(out, day)
	}
	return out
}

func daysSince(from, now time.Time) int {
	if from.IsZero() || now.Before(from) {
		return 0
	}
	return int(now.Sub(from).Hours() / 24)
}
