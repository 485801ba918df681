package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule checks a five-field cron expression or @descriptor.
func ValidateSchedule(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", spec, err)
	}
	return nil
}

// Job is a named periodic task.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context)
}

type registered struct {
	job     Job
	entryID cron.EntryID
	busy    bool
}

// Scheduler runs jobs on their cron schedules. A job that is still running
// when its next tick arrives is skipped for that tick.
type Scheduler struct {
	cron *cron.Cron

	mu         sync.RWMutex
	jobs       map[string]*registered
	isRunning  bool
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithParser(parser)),
		jobs: make(map[string]*registered),
		ctx:  context.Background(),
	}
}

// Add registers job. Names must be unique.
func (s *Scheduler) Add(job Job) error {
	if err := ValidateSchedule(job.Schedule); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job %q already registered", job.Name)
	}

	r := &registered{job: job}
	entryID, err := s.cron.AddFunc(job.Schedule, func() { s.run(job.Name) })
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.Name, err)
	}
	r.entryID = entryID
	s.jobs[job.Name] = r

	log.Printf("[SCHEDULER] Registered %s with schedule '%s'", job.Name, job.Schedule)
	return nil
}

// Start begins ticking. Cancelling ctx stops the scheduler.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}

	s.ctx, s.cancelFunc = context.WithCancel(ctx)
	s.cron.Start()
	s.isRunning = true
	log.Printf("[SCHEDULER] Started with %d jobs", len(s.jobs))

	go func(done <-chan struct{}) {
		<-done
		s.Stop()
	}(s.ctx.Done())
}

// Stop waits for running jobs and halts the scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	stopped := s.cron.Stop()
	<-stopped.Done()
	if cancel != nil {
		cancel()
	}

	log.Printf("[SCHEDULER] Stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// RunNow triggers job name immediately in the background.
func (s *Scheduler) RunNow(name string) error {
	s.mu.RLock()
	_, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	go s.run(name)
	return nil
}

// NextRun returns when job name fires next, or nil when stopped.
func (s *Scheduler) NextRun(name string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.jobs[name]
	if !ok || !s.isRunning {
		return nil
	}
	next := s.cron.Entry(r.entryID).Next
	return &next
}

func (s *Scheduler) run(name string) {
	s.mu.Lock()
	r, ok := s.jobs[name]
	if !ok {
		s.mu.Unlock()
		return
	}
	if r.busy {
		s.mu.Unlock()
		log.Printf("[SCHEDULER] %s: skipped (already running)", name)
		return
	}
	r.busy = true
	ctx := s.ctx
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		r.busy = false
		s.mu.Unlock()
	}()

	start := time.Now()
	r.job.Run(ctx)
	log.Printf("[SCHEDULER] %s: finished in %v", name, time.Since(start).Round(time.Millisecond))
}
