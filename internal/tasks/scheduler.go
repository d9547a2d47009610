package tasks

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/mohammad-safakhou/dayplan/models"
)

// Syncer is the slice of the planner service the scheduler needs.
type Syncer interface {
	SyncTasks(ctx context.Context) ([]models.Task, error)
}

// Scheduler re-runs the task source sync whenever the configured cron spec
// is due. One instance per process; no distributed locking is needed since
// all state is in-process.
type Scheduler struct {
	syncer Syncer
	spec   string
	tick   time.Duration
	logger *log.Logger

	mu      sync.Mutex
	lastRun *time.Time
}

// NewScheduler builds a scheduler for the given cron spec. Supported specs:
// "@daily", "@hourly" and standard 5-field cron expressions.
func NewScheduler(syncer Syncer, spec string, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(log.Writer(), "[SYNC] ", log.LstdFlags)
	}
	return &Scheduler{syncer: syncer, spec: spec, tick: time.Minute, logger: logger}
}

// Start launches the scheduler loop until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	if s == nil || s.syncer == nil {
		return
	}
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	s.runTick(ctx) // immediate run to avoid waiting for first tick
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runTick(ctx)
		}
	}
}

func (s *Scheduler) runTick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	last := s.lastRun
	s.mu.Unlock()
	if !isDue(s.spec, last, time.Now()) {
		return
	}
	synced, err := s.syncer.SyncTasks(ctx)
	if err != nil {
		s.logger.Printf("task sync failed: %v", err)
		return
	}
	s.logger.Printf("task sync done, %d tasks known", len(synced))
	now := time.Now()
	s.mu.Lock()
	s.lastRun = &now
	s.mu.Unlock()
}

// isDue determines whether a sync governed by cronSpec should run now given
// the last run time. Invalid specs fall back to @daily.
func isDue(cronSpec string, last *time.Time, now time.Time) bool {
	switch cronSpec {
	case "@daily":
		if last == nil {
			return true
		}
		return now.Sub(*last) >= 24*time.Hour
	case "@hourly":
		if last == nil {
			return true
		}
		return now.Sub(*last) >= time.Hour
	default:
		expr, err := cronexpr.Parse(cronSpec)
		if err != nil {
			if last == nil {
				return true
			}
			return now.Sub(*last) >= 24*time.Hour
		}
		if last == nil {
			return true
		}
		next := expr.Next(*last)
		return !next.After(now)
	}
}
