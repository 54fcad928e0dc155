package farm

import (
	"context"
)

// Provider abstracts an upstream weather data source (e.g.
// OpenWeatherMap, Open-Meteo). A failed fetch is not fatal to a refresh
// cycle; the normalizer substitutes a synthetic reading instead.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (RawWeather, error)
}

// ForecastProvider is implemented by providers that can also supply
// multi-day forecasts as a series of raw readings (typically several
// per day; callers bucket them by day).
type ForecastProvider interface {
	Provider
	FetchForecast(ctx context.Context, loc Location, days int) ([]RawWeather, error)
}
