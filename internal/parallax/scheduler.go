package parallax

import "time"

// maxCatchUp bounds how many times one timer fires during a single Advance.
const maxCatchUp = 64

// Handle cancels a repeating callback.
type Handle interface {
	Cancel()
	Active() bool
}

// Scheduler runs fn every interval until the returned handle is cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

type frameTimer struct {
	interval  time.Duration
	elapsed   time.Duration
	fn        func()
	cancelled bool
}

func (t *frameTimer) Cancel()      { t.cancelled = true }
func (t *frameTimer) Active() bool { return !t.cancelled }

// FrameScheduler is advanced by a render loop; callbacks run on the
// caller's goroutine from inside Advance.
type FrameScheduler struct {
	timers []*frameTimer
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

func (s *FrameScheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	t := &frameTimer{interval: interval, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves time forward by dt and returns how many callbacks ran.
func (s *FrameScheduler) Advance(dt time.Duration) int {
	fired := 0
	timers := append([]*frameTimer(nil), s.timers...)
	for _, t := range timers {
		if t.cancelled {
			continue
		}
		t.elapsed += dt
		n := 0
		for t.elapsed >= t.interval && !t.cancelled {
			t.elapsed -= t.interval
			if n == maxCatchUp {
				t.elapsed %= t.interval
				break
			}
			t.fn()
			n++
		}
		fired += n
	}
	s.compact()
	return fired
}

// Active counts timers not yet cancelled.
func (s *FrameScheduler) Active() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (s *FrameScheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
