package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/Hawkeyeeye/smart-farmer/internal/farm"
)

// OpenMeteoProvider implements farm.Provider for Open-Meteo. It needs
// no API key, but it does need coordinates: when the location carries
// none, the city/country is geocoded once (Google geocoding API key
// required) and the result cached.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker

	geocoderKey string

	mu     sync.Mutex
	coords map[string][2]float64 // location key -> lat, lon
}

func NewOpenMeteoProvider(client *http.Client, geocoderKey string) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:        "openmeteo",
		baseURL:     "https://api.open-meteo.com/v1/forecast",
		httpCfg:     defaultBackoff(client),
		circuit:     newBreaker("openmeteo"),
		geocoderKey: geocoderKey,
		coords:      make(map[string][2]float64),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// resolveCoords returns the coordinates for a location, geocoding
// city/country on first use when the config did not supply them.
func (p *OpenMeteoProvider) resolveCoords(loc farm.Location) (float64, float64, error) {
	if loc.Lat != nil && loc.Lon != nil {
		return *loc.Lat, *loc.Lon, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.coords[loc.Key()]; ok {
		return c[0], c[1], nil
	}
	if p.geocoderKey == "" {
		return 0, 0, fmt.Errorf("openmeteo requires coordinates or a geocoder api key")
	}

	geocoder.ApiKey = p.geocoderKey
	result, err := geocoder.Geocoding(geocoder.Address{
		City:    loc.City,
		Country: loc.Country,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding %s: %w", loc.Key(), err)
	}

	p.coords[loc.Key()] = [2]float64{result.Latitude, result.Longitude}
	return result.Latitude, result.Longitude, nil
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc farm.Location) (farm.RawWeather, error) {
	lat, lon, err := p.resolveCoords(loc)
	if err != nil {
		return farm.RawWeather{}, err
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current", "temperature_2m,relative_humidity_2m,surface_pressure,wind_speed_10m,uv_index")
		values.Set("wind_speed_unit", "ms")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return farm.RawWeather{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Time            string   `json:"time"`
			Temperature     *float64 `json:"temperature_2m"`
			Humidity        *float64 `json:"relative_humidity_2m"`
			SurfacePressure *float64 `json:"surface_pressure"`
			WindSpeed       *float64 `json:"wind_speed_10m"`
			UVIndex         *float64 `json:"uv_index"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return farm.RawWeather{}, err
	}

	ts, err := time.Parse("2006-01-02T15:04", payload.Current.Time)
	if err != nil {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	return farm.RawWeather{
		SourceName:   p.name,
		Timestamp:    ts,
		TemperatureC: payload.Current.Temperature,
		HumidityPct:  payload.Current.Humidity,
		PressureHpa:  payload.Current.SurfacePressure,
		WindSpeedMS:  payload.Current.WindSpeed,
		UVIndex:      payload.Current.UVIndex,
	}, nil
}
