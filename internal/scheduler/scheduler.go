package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Reaper evicts idle sessions.
type Reaper interface {
	Reap(maxIdle time.Duration) int
	Len() int
}

// Scheduler periodically evicts sessions that have been idle too long.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reaper    Reaper
	interval  time.Duration
	maxIdle   time.Duration
}

// New creates a new Scheduler.
func New(reaper Reaper, interval, maxIdle time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		reaper:    reaper,
		interval:  interval,
		maxIdle:   maxIdle,
	}
}

// Start schedules the reaping job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.maxIdle <= 0 {
		log.Println("scheduler: session idle timeout disabled; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(s.reap)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) reap() {
	n := s.reaper.Reap(s.maxIdle)
	if n > 0 {
		log.Printf("scheduler: evicted %d idle sessions, %d live", n, s.reaper.Len())
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
