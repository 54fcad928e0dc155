package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/Hawkeyeeye/smart-farmer/internal/dashboard"
)

// Scheduler periodically runs the dashboard refresh cycle.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *dashboard.Service
	interval  time.Duration
}

// New creates a Scheduler.
func New(interval time.Duration, service *dashboard.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	// Cycles must never overlap; a slow upstream fetch just delays the
	// next tick.
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	_, err := s.scheduler.Every(interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.service.Refresh(ctx)
		log.Println("scheduler: dashboard refresh cycle completed")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
