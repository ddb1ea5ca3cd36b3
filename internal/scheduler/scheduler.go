// Package scheduler provides cron-based scheduling for the recurring
// charge processor.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mehdi559/poe/pkg/datetime"
)

// Processor materializes due recurring charges for the given day and
// reports how many were generated.
type Processor interface {
	ProcessDue(ctx context.Context, now datetime.Date) (int, error)
}

// Config holds the scheduler configuration
type Config struct {
	// Schedule is a cron expression for when to process recurring charges
	// (e.g. "0 6 * * *" for every day at 06:00)
	Schedule string
	// Timeout is the maximum duration for a complete processing run
	Timeout time.Duration
	// Enabled determines if the scheduler should run
	Enabled bool
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule: "0 6 * * *",
		Timeout:  2 * time.Minute,
		Enabled:  true,
	}
}

// Scheduler runs the recurring charge processor on a cron schedule
type Scheduler struct {
	cron      *cron.Cron
	processor Processor
	config    Config
	logger    *slog.Logger
	entryID   cron.EntryID
}

// New creates a new Scheduler instance
func New(cfg Config, processor Processor, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		processor: processor,
		config:    cfg,
		logger:    logger,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Scheduler is disabled, skipping start")
		return nil
	}

	// Convert standard cron (5 fields) to cron with seconds (6 fields)
	schedule := "0 " + s.config.Schedule

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runProcessJob()
	})
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.cron.Start()

	s.logger.Info("Scheduler started",
		slog.String("schedule", s.config.Schedule),
		slog.Duration("timeout", s.config.Timeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping scheduler...")
	return s.cron.Stop()
}

// RunNow triggers an immediate processing run (useful for manual triggers)
func (s *Scheduler) RunNow() {
	go s.runProcessJob()
}

func (s *Scheduler) runProcessJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	startTime := time.Now()
	count, err := s.processor.ProcessDue(ctx, datetime.Today())
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Recurring processing failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)
		return
	}

	s.logger.Info("Recurring processing completed",
		slog.Int("charges_processed", count),
		slog.Duration("duration", duration),
	)
}

// NextRunTime returns the next scheduled run time
func (s *Scheduler) NextRunTime() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
