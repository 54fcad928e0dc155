package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Hawkeyeeye/smart-farmer/internal/farm"
)

// AppConfig is the full runtime configuration, read from the
// environment with sensible defaults.
type AppConfig struct {
	OpenWeatherAPIKey string
	GeocoderAPIKey    string

	// RefreshInterval controls how often the dashboard payload is
	// recomputed and pushed.
	RefreshInterval time.Duration

	// HTTPTimeout applies to outbound provider calls.
	HTTPTimeout time.Duration

	// HistoryCapacity caps the rolling historical series.
	HistoryCapacity int

	// Farm profile.
	Location      farm.Location
	BaseYieldKgHa float64
	FieldSizeHa   float64
	PlantingDate  time.Time

	Port string
}

// Load reads configuration from the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	interval, err := time.ParseDuration(getenvDefault("REFRESH_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// 96 samples is roughly 48 minutes at the default 30s interval; a
	// dashboard chart rarely wants more points than that.
	cfg.HistoryCapacity = getenvInt("HISTORY_CAPACITY", 96)

	cfg.Location = farm.Location{
		City:    getenvDefault("FARM_CITY", "Nashik"),
		Country: getenvDefault("FARM_COUNTRY", "IN"),
	}
	if lat, ok := getenvFloat("FARM_LAT"); ok {
		cfg.Location.Lat = &lat
	}
	if lon, ok := getenvFloat("FARM_LON"); ok {
		cfg.Location.Lon = &lon
	}

	baseYield, ok := getenvFloat("BASE_YIELD_KG_HA")
	if !ok {
		baseYield = 4500
	}
	cfg.BaseYieldKgHa = baseYield

	fieldSize, ok := getenvFloat("FIELD_SIZE_HA")
	if !ok {
		fieldSize = 2.5
	}
	cfg.FieldSizeHa = fieldSize

	planting := getenvDefault("PLANTING_DATE", "")
	if planting != "" {
		ts, err := time.Parse("2006-01-02", planting)
		if err != nil {
			return nil, fmt.Errorf("invalid PLANTING_DATE (want YYYY-MM-DD): %w", err)
		}
		cfg.PlantingDate = ts.UTC()
	} else {
		// Default to a crop a month and a half into its cycle so a
		// fresh install shows something meaningful.
		cfg.PlantingDate = time.Now().UTC().AddDate(0, 0, -45)
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
