// Package scheduler runs console commands after a delay.
//
// Time only moves when the host calls Advance, normally once per frame or tick. Two clocks
// are kept: the scaled clock follows the console's TimeScale variable and the real clock
// ignores it. Due tasks are collected and run by Drain.
package scheduler

import (
	"container/heap"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"cmdterm/internal/logger"
)

// ClockKind selects the clock a task waits on.
type ClockKind int

const (
	// Scaled advances by the real delta multiplied by the time scale.
	Scaled ClockKind = iota
	// Real advances by the real delta.
	Real
)

// String returns the clock name.
func (c ClockKind) String() string {
	if c == Real {
		return "real"
	}
	return "scaled"
}

// Never is the delay of a task that stays queued until cancelled. Clocks stop one
// nanosecond short of it.
const Never = time.Duration(math.MaxInt64)

// ErrInvalidDelay is returned by DelayFromSeconds for a NaN delay.
var ErrInvalidDelay = errors.New("delay is not a number")

// DelayFromSeconds converts a delay in seconds to a Duration. Negative delays become zero
// and anything too large for a Duration, +Inf included, becomes Never.
func DelayFromSeconds(seconds float64) (time.Duration, error) {
	switch {
	case math.IsNaN(seconds):
		return 0, ErrInvalidDelay
	case seconds <= 0:
		return 0, nil
	}
	ns := seconds * float64(time.Second)
	if ns >= float64(Never) {
		return Never, nil
	}
	return time.Duration(ns), nil
}

// TaskID identifies a scheduled task for cancellation.
type TaskID string

// Task is a pending command invocation.
type Task struct {
	ID      TaskID
	Command string
	Clock   ClockKind
	FireAt  time.Duration

	seq       uint64
	cancelled bool
}

// Scheduler is the queue of delayed commands.
type Scheduler struct {
	mu      sync.Mutex
	now     [2]time.Duration
	queues  [2]taskQueue
	pending map[TaskID]*Task
	seq     uint64
}

// New creates an empty scheduler with both clocks at zero.
func New() *Scheduler {
	return &Scheduler{pending: make(map[TaskID]*Task)}
}

// Schedule queues command to run once delay has elapsed on clock. Negative delays count as zero;
// a fire time past the end of the clock is pinned to Never.
func (s *Scheduler) Schedule(delay time.Duration, clock ClockKind, command string) TaskID {
	if delay < 0 {
		delay = 0
	}
	if clock != Real {
		clock = Scaled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	task := &Task{
		ID:      TaskID(uuid.NewString()),
		Command: command,
		Clock:   clock,
		FireAt:  addSaturated(s.now[clock], delay, Never),
		seq:     s.seq,
	}
	heap.Push(&s.queues[clock], task)
	s.pending[task.ID] = task

	logger.Debug("Task scheduled", "id", task.ID, "clock", clock, "delay", delay, "command", command)
	return task.ID
}

// Cancel drops a pending task. It reports whether the task was still pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.pending[id]
	if !ok {
		return false
	}
	task.cancelled = true
	delete(s.pending, id)
	return true
}

// Advance moves the real clock by realDelta and the scaled clock by realDelta*timeScale.
// A negative or NaN scale freezes the scaled clock. Both clocks saturate just below Never.
func (s *Scheduler) Advance(realDelta time.Duration, timeScale float64) {
	if realDelta < 0 {
		realDelta = 0
	}
	if timeScale < 0 || math.IsNaN(timeScale) {
		timeScale = 0
	}

	var scaledDelta time.Duration
	if realDelta > 0 && timeScale > 0 {
		scaledDelta = Never
		if f := float64(realDelta) * timeScale; f < float64(Never) {
			scaledDelta = time.Duration(f)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.now[Real] = addSaturated(s.now[Real], realDelta, Never-1)
	s.now[Scaled] = addSaturated(s.now[Scaled], scaledDelta, Never-1)
}

func addSaturated(a, b, limit time.Duration) time.Duration {
	if b > limit-a {
		return limit
	}
	return a + b
}

// Now returns the current reading of clock.
func (s *Scheduler) Now(clock ClockKind) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if clock != Real {
		clock = Scaled
	}
	return s.now[clock]
}

// Drain runs every task that is due. Tasks on the same clock fire in fire-time order,
// ties in scheduling order; scaled tasks go before real ones. Tasks scheduled while
// draining wait for the next call even when their delay is zero.
func (s *Scheduler) Drain(run func(command string)) int {
	due := s.collectDue()

	fired := 0
	for _, task := range due {
		s.mu.Lock()
		cancelled := task.cancelled
		if !cancelled {
			delete(s.pending, task.ID)
		}
		s.mu.Unlock()
		if cancelled {
			continue
		}

		logger.Debug("Task fired", "id", task.ID, "command", task.Command)
		run(task.Command)
		fired++
	}
	return fired
}

func (s *Scheduler) collectDue() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*Task
	for _, clock := range []ClockKind{Scaled, Real} {
		q := &s.queues[clock]
		for q.Len() > 0 && (*q)[0].FireAt <= s.now[clock] {
			task := heap.Pop(q).(*Task)
			if task.cancelled {
				continue
			}
			due = append(due, task)
		}
	}
	return due
}

// Pending returns the number of tasks waiting to fire.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Tasks returns the pending tasks sorted by clock, then fire time.
func (s *Scheduler) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Task
	for _, clock := range []ClockKind{Scaled, Real} {
		q := append(taskQueue(nil), s.queues[clock]...)
		heap.Init(&q)
		for q.Len() > 0 {
			task := heap.Pop(&q).(*Task)
			if !task.cancelled {
				out = append(out, *task)
			}
		}
	}
	return out
}

// Clear cancels every pending task. Clock readings are kept.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range s.pending {
		task.cancelled = true
	}
	s.pending = make(map[TaskID]*Task)
	s.queues = [2]taskQueue{}
}

// taskQueue is a min-heap on (FireAt, seq).
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].FireAt != q[j].FireAt {
		return q[i].FireAt < q[j].FireAt
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x interface{}) { *q = append(*q, x.(*Task)) }

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return task
}
