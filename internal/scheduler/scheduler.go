// Package scheduler runs the periodic AI post generation job.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"psytech/internal/lib/logger/sl"

	"github.com/robfig/cron/v3"
)

const (
	GenerationJobID   = "ai_post_generation"
	GenerationJobName = "Generate AI blog post twice weekly"
)

type Job func() error

type Status struct {
	SchedulerRunning   bool        `json:"scheduler_running"`
	AutoPublishEnabled bool        `json:"auto_publish_enabled"`
	Jobs               []JobStatus `json:"jobs"`
}

type JobStatus struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	NextRunTime *time.Time `json:"next_run_time"`
	Trigger     string     `json:"trigger"`
}

type Scheduler struct {
	log         *slog.Logger
	cron        *cron.Cron
	spec        string
	entryID     cron.EntryID
	autoPublish bool

	mu      sync.Mutex
	running bool
}

// New registers job on the cron spec (standard five fields, UTC).
func New(log *slog.Logger, spec string, autoPublish bool, job Job) (*Scheduler, error) {
	const op = "scheduler.New"

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cronLogger{log: log})),
	)

	s := &Scheduler{
		log:         log,
		cron:        c,
		spec:        spec,
		autoPublish: autoPublish,
	}

	id, err := c.AddFunc(spec, func() {
		log := s.log.With(slog.String("op", "scheduler.run"), slog.String("job", GenerationJobID))
		if err := job(); err != nil {
			log.Warn("scheduled job not started", sl.Err(err))
			return
		}
		log.Info("scheduled job started")
	})
	if err != nil {
		return nil, fmt.Errorf("%s: invalid schedule %q: %w", op, spec, err)
	}
	s.entryID = id

	return s, nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.cron.Start()
	s.running = true

	s.log.Info("scheduler started",
		slog.String("job", GenerationJobID),
		slog.String("schedule", s.spec),
	)
}

// Stop prevents new runs and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	const op = "scheduler.Stop"

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	job := JobStatus{
		ID:      GenerationJobID,
		Name:    GenerationJobName,
		Trigger: fmt.Sprintf("cron[%s]", s.spec),
	}

	if running {
		entry := s.cron.Entry(s.entryID)
		next := entry.Next
		if next.IsZero() && entry.Schedule != nil {
			next = entry.Schedule.Next(time.Now().UTC())
		}
		if !next.IsZero() {
			job.NextRunTime = &next
		}
	}

	return Status{
		SchedulerRunning:   running,
		AutoPublishEnabled: s.autoPublish,
		Jobs:               []JobStatus{job},
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append([]interface{}{sl.Err(err)}, keysAndValues...)...)
}
