package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	"github.com/jdziat/simple-invocation-wrappers/pkg/security"
	"github.com/jdziat/simple-invocation-wrappers/pkg/timing"
)

// DefaultPollInterval is how often Start checks for due entries.
const DefaultPollInterval = 100 * time.Millisecond

// ErrNeverFires is returned by Add for a schedule with no future run.
var ErrNeverFires = errors.New("schedule has no future run")

// Runner invokes an Invoker on one or more schedules.
type Runner struct {
	invoker      core.Invoker
	pollInterval time.Duration
	clock        timing.Clock
	logger       *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

type entry struct {
	name     string
	schedule Schedule
	args     core.Args
	next     time.Time
}

// RunnerOption configures a Runner.
type RunnerOption interface {
	applyRunner(*Runner)
}

type runnerOptionFunc func(*Runner)

func (f runnerOptionFunc) applyRunner(r *Runner) { f(r) }

// PollInterval sets how often due entries are checked.
func PollInterval(d time.Duration) RunnerOption {
	return runnerOptionFunc(func(r *Runner) {
		if d > 0 {
			r.pollInterval = d
		}
	})
}

// WithClock sets the clock used to decide which entries are due.
func WithClock(c timing.Clock) RunnerOption {
	return runnerOptionFunc(func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	})
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return runnerOptionFunc(func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	})
}

// NewRunner creates a runner for inv.
func NewRunner(inv core.Invoker, opts ...RunnerOption) *Runner {
	r := &Runner{
		invoker:      inv,
		pollInterval: DefaultPollInterval,
		clock:        timing.SystemClock{},
		logger:       slog.Default(),
		entries:      make(map[string]*entry),
	}
	for _, opt := range opts {
		opt.applyRunner(r)
	}
	return r
}

// Add registers an entry. Its first run is the schedule's next instant after
// now. Adding a name that already exists replaces that entry. A schedule
// whose next instant is zero or not after now is rejected.
func (r *Runner) Add(name string, s Schedule, args core.Args) error {
	if err := security.ValidateName(name); err != nil {
		return fmt.Errorf("invalid schedule name %q: %w", name, err)
	}
	if s == nil {
		return fmt.Errorf("schedule %q: schedule cannot be nil", name)
	}

	now := r.clock.Now()
	next := s.Next(now)
	if next.IsZero() || !next.After(now) {
		return fmt.Errorf("schedule %q: %w", name, ErrNeverFires)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = &entry{
		name:     name,
		schedule: s,
		args:     args,
		next:     next,
	}
	return nil
}

// Next returns the next run time of the named entry.
func (r *Runner) Next(name string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok {
		return time.Time{}, false
	}
	return e.next, true
}

// Start blocks, running due entries until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.mu.Lock()
	n := len(r.order)
	r.mu.Unlock()

	r.logger.Info("schedule runner started", "entries", n, "poll_interval", r.pollInterval)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("schedule runner stopped")
			return ctx.Err()
		case <-ticker.C:
			r.RunDue(ctx)
		}
	}
}

// RunDue invokes every entry whose next run time has passed, in the order
// they were added, and returns how many ran. A failed invocation is logged
// and the entry moves on to its next run. An entry whose schedule stops
// advancing is removed after its last run.
func (r *Runner) RunDue(ctx context.Context) int {
	now := r.clock.Now()

	r.mu.Lock()
	var due []*entry
	order := r.order[:0]
	for _, name := range r.order {
		e := r.entries[name]
		if !now.Before(e.next) {
			due = append(due, e)
			e.next = e.schedule.Next(now)
			if e.next.IsZero() || !e.next.After(now) {
				r.logger.Warn("schedule has no future run, removing entry", "name", e.name)
				delete(r.entries, name)
				continue
			}
		}
		order = append(order, name)
	}
	r.order = order
	r.mu.Unlock()

	for _, e := range due {
		if _, err := r.invoker.Invoke(ctx, e.args.Clone()); err != nil {
			r.logger.Error("scheduled invocation failed", "name", e.name, "error", err)
			continue
		}
		r.logger.Debug("scheduled invocation completed", "name", e.name)
	}
	return len(due)
}
