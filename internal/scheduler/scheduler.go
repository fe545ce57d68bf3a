package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// DefaultSweepInterval is how often abandoned conversation states are swept
const DefaultSweepInterval = time.Hour

// Sweeper drops conversation states idle for longer than maxAge
type Sweeper interface {
	SweepStaleStates(maxAge time.Duration) int
}

// LockPruner drops per-user locks idle for longer than maxAge
type LockPruner interface {
	Prune(maxAge time.Duration) int
}

// Scheduler manages scheduled housekeeping tasks
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	locks     LockPruner
	stateTTL  time.Duration
	logger    *zap.Logger
}

// New creates a new scheduler instance
func New(sweeper Sweeper, locks LockPruner, stateTTL time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		locks:     locks,
		stateTTL:  stateTTL,
		logger:    logger,
	}
}

// Start schedules the sweep every interval and runs it in the background
func (s *Scheduler) Start(interval time.Duration) error {
	if _, err := s.scheduler.Every(interval).Do(s.sweepStates); err != nil {
		return fmt.Errorf("failed to schedule state sweep: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sweepStates removes abandoned quiz and word-entry states and the locks of idle users
func (s *Scheduler) sweepStates() {
	swept := s.sweeper.SweepStaleStates(s.stateTTL)
	if swept > 0 {
		s.logger.Info("Swept stale conversation states",
			zap.Int("count", swept),
			zap.Duration("ttl", s.stateTTL),
		)
	}

	if s.locks == nil {
		return
	}
	if pruned := s.locks.Prune(s.stateTTL); pruned > 0 {
		s.logger.Debug("Pruned idle user locks", zap.Int("count", pruned))
	}
}
