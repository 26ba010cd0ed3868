package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"decorlens/pkg/logger"
)

// Task is one run of a job. The context is cancelled after the job timeout
// or when the scheduler stops.
type Task func(ctx context.Context) error

type JobScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, timeout time.Duration, task Task) error
	RemoveJob(id string) error
	RunNow(id string) error
	Jobs() []JobStatus
	IsRunning() bool
}

// JobStatus is the reportable state of a job
type JobStatus struct {
	ID        string     `json:"id"`
	CronExpr  string     `json:"cron_expr"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	Runs      int        `json:"runs"`
}

type job struct {
	status  JobStatus
	timeout time.Duration
	task    Task
	handle  *gocron.Job
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*job
	mu        sync.RWMutex
	running   bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler() *GocronScheduler {
	s := gocron.NewScheduler(time.UTC)
	// A slow run must not overlap the next tick
	s.SingletonModeAll()

	ctx, cancel := context.WithCancel(context.Background())
	return &GocronScheduler{
		scheduler: s,
		jobs:      make(map[string]*job),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		logger.SchedulerWarn("start", "Scheduler is already running", nil)
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Scheduler("started", "Scheduler started", map[string]interface{}{"jobs": len(s.jobs)})
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.scheduler.Stop()
	s.running = false
	logger.Scheduler("stopped", "Scheduler stopped", nil)
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, timeout time.Duration, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	handle, err := s.scheduler.Cron(cronExpr).Do(func() { s.run(id) })
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}

	j := &job{
		status:  JobStatus{ID: id, CronExpr: cronExpr},
		timeout: timeout,
		task:    task,
		handle:  handle,
	}
	s.jobs[id] = j

	logger.Scheduler("job_added", "Job added", map[string]interface{}{"job_id": id, "cron_expr": cronExpr})
	return nil
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	s.scheduler.RemoveByReference(j.handle)
	delete(s.jobs, id)
	logger.Scheduler("job_removed", "Job removed", map[string]interface{}{"job_id": id})
	return nil
}

// RunNow executes a job synchronously outside its schedule
func (s *GocronScheduler) RunNow(id string) error {
	s.mu.RLock()
	_, exists := s.jobs[id]
	s.mu.RUnlock()
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}
	return s.run(id)
}

// Jobs returns a copy of every job's status, sorted by id
func (s *GocronScheduler) Jobs() []JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobStatus, 0, len(s.jobs))
	for _, j := range s.jobs {
		status := j.status
		if s.running && j.handle != nil {
			next := j.handle.NextRun()
			status.NextRun = &next
		}
		out = append(out, status)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

func (s *GocronScheduler) run(id string) error {
	s.mu.RLock()
	j, exists := s.jobs[id]
	s.mu.RUnlock()
	if !exists {
		return nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(s.ctx, j.timeout)
	defer cancel()

	err := j.task(ctx)

	s.mu.Lock()
	j.status.LastRun = &start
	j.status.Runs++
	j.status.LastError = ""
	if err != nil {
		j.status.LastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		logger.SchedulerError("job_failed", "Job failed", err, map[string]interface{}{
			"job_id":      id,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	}

	logger.Scheduler("job_completed", "Job completed", map[string]interface{}{
		"job_id":      id,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}
