package gesture

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs a function once after a delay. The recognizer uses it for
// the deferred single-click check.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call from running. It reports whether the call was
	// still pending.
	Stop() bool
}

// WallClock schedules on real time via time.AfterFunc. Callbacks run on a
// timer goroutine.
type WallClock struct{}

// AfterFunc implements Scheduler.
func (WallClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// --- Frame-driven scheduler ---

type frameTask struct {
	seq      uint64
	deadline time.Duration
	fn       func()
	stopped  bool
	fired    bool
	owner    *FrameScheduler
}

func (t *frameTask) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// FrameScheduler is a deterministic Scheduler advanced explicitly, typically
// once per game tick. Due callbacks run on the goroutine that calls Advance,
// in deadline order (ties in scheduling order). There is no global clock;
// callers drive it themselves.
type FrameScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*frameTask
}

// NewFrameScheduler creates a scheduler whose clock starts at zero.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// AfterFunc implements Scheduler.
func (s *FrameScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &frameTask{seq: s.seq, deadline: s.now + d, fn: fn, owner: s}
	s.tasks = append(s.tasks, t)
	return t
}

// Now returns the scheduler's elapsed time.
func (s *FrameScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of scheduled calls that have neither fired nor
// been stopped.
func (s *FrameScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and runs every call whose deadline
// has been reached. Calls scheduled by a running callback fire in the same
// Advance if their deadline also falls inside the window.
func (s *FrameScheduler) Advance(dt time.Duration) {
	s.mu.Lock()
	if dt > 0 {
		s.now += dt
	}
	s.mu.Unlock()

	for {
		t := s.popDue()
		if t == nil {
			return
		}
		t.fn()
	}
}

// popDue removes and returns the earliest due live task, compacting the
// task list as it goes.
func (s *FrameScheduler) popDue() *frameTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
	if len(s.tasks) == 0 {
		return nil
	}

	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].deadline != s.tasks[j].deadline {
			return s.tasks[i].deadline < s.tasks[j].deadline
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	t := s.tasks[0]
	if t.deadline > s.now {
		return nil
	}
	t.fired = true
	return t
}
