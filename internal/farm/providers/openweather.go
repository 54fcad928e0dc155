package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Hawkeyeeye/smart-farmer/internal/farm"
)

// OpenWeatherProvider implements farm.Provider and farm.ForecastProvider
// for OpenWeatherMap. Current conditions come from /weather, forecasts
// from the 3-hourly /forecast endpoint.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	baseURL     string
	forecastURL string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		baseURL:     "https://api.openweathermap.org/data/2.5/weather",
		forecastURL: "https://api.openweathermap.org/data/2.5/forecast",
		httpCfg:     defaultBackoff(client),
		circuit:     newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) query(loc farm.Location) url.Values {
	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	q := loc.City
	if loc.Country != "" {
		q = fmt.Sprintf("%s,%s", loc.City, loc.Country)
	}
	values.Set("q", q)
	return values
}

// openWeatherEntry is the shared current/forecast item shape.
type openWeatherEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Visibility *float64 `json:"visibility"`
	Weather    []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (p *OpenWeatherProvider) toRaw(e openWeatherEntry) farm.RawWeather {
	ts := time.Unix(e.Dt, 0).UTC()
	if e.Dt == 0 {
		ts = time.Now().UTC()
	}

	desc := ""
	if len(e.Weather) > 0 {
		desc = e.Weather[0].Description
	}

	return farm.RawWeather{
		SourceName:   p.name,
		TemperatureC: e.Main.Temp,
		HumidityPct:  e.Main.Humidity,
		PressureHpa:  e.Main.Pressure,
		WindSpeedMS:  e.Wind.Speed,
		VisibilityM:  e.Visibility,
		Description:  desc,
		Timestamp:    ts,
	}
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc farm.Location) (farm.RawWeather, error) {
	if p.apiKey == "" {
		return farm.RawWeather{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s?%s", p.baseURL, p.query(loc).Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return farm.RawWeather{}, err
	}
	defer resp.Body.Close()

	var payload openWeatherEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return farm.RawWeather{}, err
	}

	return p.toRaw(payload), nil
}

// FetchForecast returns 3-hourly raw readings covering the requested
// number of days; callers bucket them per day.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, loc farm.Location, days int) ([]farm.RawWeather, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := p.query(loc)
		// 8 three-hour slots per day.
		values.Set("cnt", fmt.Sprintf("%d", days*8))
		u := fmt.Sprintf("%s?%s", p.forecastURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []openWeatherEntry `json:"list"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	out := make([]farm.RawWeather, 0, len(payload.List))
	for _, e := range payload.List {
		out = append(out, p.toRaw(e))
	}
	return out, nil
}
