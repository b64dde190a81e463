package scheduler

import (
	"dailyq/internal/utils"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// HistorySize bounds the number of runs kept by History.
const HistorySize = 30

// Run is the outcome of one scheduled execution.
type Run struct {
	Started  time.Time
	Finished time.Time
	Err      error
}

// Scheduler runs a task once a day at a fixed local time.
// Overlapping runs are skipped, so a slow delivery never races the next one.
type Scheduler struct {
	cron     *cron.Cron
	mu       sync.Mutex
	entryID  cron.EntryID
	location *time.Location
	history  *utils.RingBuffer[Run]
	now      func() time.Time
}

// New creates a Scheduler in the given timezone.
func New(timezone string) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	return &Scheduler{
		cron:     c,
		location: loc,
		history:  utils.NewRingBuffer[Run](HistorySize),
		now:      time.Now,
	}, nil
}

// Schedule runs task daily at the given time (HH:MM format).
// A previous schedule is replaced. Every outcome is kept in History.
func (s *Scheduler) Schedule(at string, task func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hour, minute, err := ParseTime(at)
	if err != nil {
		return err
	}

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}

	expr := fmt.Sprintf("%d %d * * *", minute, hour)
	entryID, err := s.cron.AddFunc(expr, s.recorded(task))
	if err != nil {
		return fmt.Errorf("adding cron entry: %w", err)
	}

	s.entryID = entryID
	slog.Info("Daily run scheduled", "time", at, "cron", expr, "timezone", s.location.String())
	return nil
}

// recorded wraps task so each execution lands in the history.
func (s *Scheduler) recorded(task func() error) func() {
	return func() {
		run := Run{Started: s.now()}
		run.Err = task()
		run.Finished = s.now()
		s.history.Push(run)
	}
}

// History returns the most recent runs, oldest first. Safe to call while running.
func (s *Scheduler) History() []Run {
	return s.history.ToSlice()
}

// Next returns the next activation time, zero if nothing is scheduled.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// Start begins the cron scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// ParseTime extracts hour and minute from HH:MM format.
func ParseTime(t string) (int, int, error) {
	parsed, err := time.Parse("15:04", t)
	if err != nil || len(t) != 5 {
		return 0, 0, fmt.Errorf("invalid time format %q: must be HH:MM", t)
	}
	return parsed.Hour(), parsed.Minute(), nil
}
