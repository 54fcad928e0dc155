package farm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func fullRawWeather() RawWeather {
	return RawWeather{
		SourceName:   "test",
		TemperatureC: ptr(21.5),
		HumidityPct:  ptr(55),
		PressureHpa:  ptr(1012),
		WindSpeedMS:  ptr(5),
		VisibilityM:  ptr(9500),
		UVIndex:      ptr(6),
		Description:  "few clouds",
		Timestamp:    testNow,
	}
}

func TestWeatherNormalizesUnits(t *testing.T) {
	n := NewNormalizer(NewGenerator(1))
	raw := fullRawWeather()

	r := n.Weather(&raw, testNow)

	assert.Equal(t, 21.5, r.TemperatureC)
	assert.Equal(t, 55.0, r.HumidityPct)
	// 5 m/s -> 18 km/h, 9500 m -> 9.5 km.
	assert.Equal(t, 18.0, r.WindSpeedKmh)
	assert.Equal(t, 9.5, r.VisibilityKm)
	assert.Equal(t, 6.0, r.UVIndex)
	assert.Equal(t, testNow, r.Timestamp)
}

func TestWeatherFallsBackOnNil(t *testing.T) {
	n := NewNormalizer(NewGenerator(1))

	r := n.Weather(nil, testNow)

	assert.False(t, r.Timestamp.IsZero())
	assert.NotZero(t, r.TemperatureC)
	assert.NotZero(t, r.HumidityPct)
	assert.NotZero(t, r.PressureHpa)
}

func TestWeatherFallsBackOnMissingField(t *testing.T) {
	n := NewNormalizer(NewGenerator(1))

	raw := fullRawWeather()
	raw.HumidityPct = nil

	r := n.Weather(&raw, testNow)

	// A partially-populated reading is discarded entirely; the
	// synthetic fallback never matches the raw temperature exactly.
	assert.NotZero(t, r.HumidityPct)
	assert.False(t, r.Timestamp.IsZero())
}

func TestWeatherClampsPercentagesAndNegatives(t *testing.T) {
	n := NewNormalizer(NewGenerator(1))

	raw := fullRawWeather()
	raw.HumidityPct = ptr(140)
	raw.WindSpeedMS = ptr(-3)

	r := n.Weather(&raw, testNow)

	assert.Equal(t, 100.0, r.HumidityPct)
	assert.Equal(t, 0.0, r.WindSpeedKmh)
}

func TestWeatherEstimatesUVFromDescription(t *testing.T) {
	n := NewNormalizer(NewGenerator(1))

	raw := fullRawWeather()
	raw.UVIndex = nil
	raw.Description = "light rain"

	r := n.Weather(&raw, testNow)
	assert.Equal(t, 2.0, r.UVIndex)

	raw = fullRawWeather()
	raw.UVIndex = nil
	raw.Description = "clear sky"

	r = n.Weather(&raw, testNow)
	assert.Equal(t, 7.0, r.UVIndex)
}

func TestWeatherFillsZeroTimestamp(t *testing.T) {
	n := NewNormalizer(NewGenerator(1))

	raw := fullRawWeather()
	raw.Timestamp = time.Time{}

	r := n.Weather(&raw, testNow)
	assert.Equal(t, testNow, r.Timestamp)
}

func TestSoilNormalizesAndClamps(t *testing.T) {
	n := NewNormalizer(NewGenerator(1))

	raw := RawSoil{
		SourceName:      "test",
		MoisturePct:     ptr(120),
		TemperatureC:    ptr(19),
		PH:              ptr(6.4),
		NitrogenPct:     ptr(-5),
		PhosphorusPct:   ptr(40),
		PotassiumPct:    ptr(50),
		ConductivityDSM: ptr(1.2),
		Timestamp:       testNow,
	}

	r := n.Soil(&raw, testNow)

	assert.Equal(t, 100.0, r.MoisturePct)
	assert.Equal(t, 0.0, r.NitrogenPct)
	assert.Equal(t, 6.4, r.PH)
	assert.Equal(t, 1.2, r.ConductivityDSM)
	assert.Equal(t, testNow, r.Timestamp)
}

func TestSoilFallsBackOnMissingField(t *testing.T) {
	n := NewNormalizer(NewGenerator(1))

	raw := RawSoil{
		SourceName:  "test",
		MoisturePct: ptr(40),
		// PH and nitrogen missing.
		Timestamp: testNow,
	}

	r := n.Soil(&raw, testNow)

	assert.NotZero(t, r.PH)
	assert.NotZero(t, r.NitrogenPct)
	assert.False(t, r.Timestamp.IsZero())
}

func TestGeneratorStaysInPlausibleRanges(t *testing.T) {
	g := NewGenerator(42)
	n := NewNormalizer(g)

	for i := 0; i < 100; i++ {
		now := testNow.Add(time.Duration(i) * time.Minute)

		w := n.Weather(nil, now)
		assert.GreaterOrEqual(t, w.TemperatureC, 12.0)
		assert.LessOrEqual(t, w.TemperatureC, 36.0)
		assert.GreaterOrEqual(t, w.HumidityPct, 0.0)
		assert.LessOrEqual(t, w.HumidityPct, 100.0)

		raw := g.RawSoil(now)
		s := n.Soil(&raw, now)
		assert.GreaterOrEqual(t, s.MoisturePct, 0.0)
		assert.LessOrEqual(t, s.MoisturePct, 100.0)
		assert.Greater(t, s.PH, 3.0)
		assert.Less(t, s.PH, 10.0)
	}
}

func TestGeneratorForecastDays(t *testing.T) {
	g := NewGenerator(7)

	fc := g.Forecast(testNow, 5)

	assert.Len(t, fc, 5)
	for i, day := range fc {
		assert.LessOrEqual(t, day.TempMinC, day.TempMaxC)
		expected := time.Date(2026, 8, 2+i, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, expected, day.Date)
	}
}
