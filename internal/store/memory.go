package store

import (
	"sync"
	"time"
)

// Sample is one per-cycle observation appended to the rolling history.
type Sample struct {
	Timestamp       time.Time
	TemperatureC    float64
	HumidityPct     float64
	SoilMoisturePct float64
}

// Series is the parallel-array view of the history the dashboard
// payload carries. All slices always have equal length.
type Series struct {
	Timestamps   []time.Time `json:"timestamps"`
	Temperature  []float64   `json:"temperature"`
	Humidity     []float64   `json:"humidity"`
	SoilMoisture []float64   `json:"soilMoisture"`
}

// History is a concurrency-safe bounded rolling buffer of samples.
// Once the configured capacity is reached the oldest sample is evicted
// on each append (FIFO).
type History struct {
	mu       sync.RWMutex
	capacity int
	samples  []Sample
}

// NewHistory creates a History. A capacity <= 0 is treated as
// unlimited.
func NewHistory(capacity int) *History {
	return &History{capacity: capacity}
}

// Append adds one sample, evicting the oldest when over capacity.
func (h *History) Append(s Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples = append(h.samples, s)
	if h.capacity > 0 && len(h.samples) > h.capacity {
		over := len(h.samples) - h.capacity
		h.samples = h.samples[over:]
	}
}

// Len returns the number of retained samples.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// Series returns a copy of the retained samples as parallel arrays.
func (h *History) Series() Series {
	h.mu.RLock()
	defer h.mu.RUnlock()

	s := Series{
		Timestamps:   make([]time.Time, len(h.samples)),
		Temperature:  make([]float64, len(h.samples)),
		Humidity:     make([]float64, len(h.samples)),
		SoilMoisture: make([]float64, len(h.samples)),
	}
	for i, sample := range h.samples {
		s.Timestamps[i] = sample.Timestamp
		s.Temperature[i] = sample.TemperatureC
		s.Humidity[i] = sample.HumidityPct
		s.SoilMoisture[i] = sample.SoilMoisturePct
	}
	return s
}

// Oldest returns the timestamp of the oldest retained sample, or a zero
// time when the history is empty.
func (h *History) Oldest() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.samples) == 0 {
		return time.Time{}
	}
	return h.samples[0].Timestamp
}
