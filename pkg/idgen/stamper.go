package idgen

import "sync"

// Stamper issues strictly increasing millisecond timestamps.
//
// When the clock has not moved past the last issued stamp (two calls within
// the same millisecond, or a clock that stepped backwards) the next
// millisecond is borrowed, so every stamp handed out by one Stamper is unique.
type Stamper struct {
	mu    sync.Mutex
	clock Clock
	last  int64
}

// NewStamper creates a Stamper on top of clock. A nil clock means system time.
func NewStamper(clock Clock) *Stamper {
	if clock == nil {
		clock = &SystemClock{}
	}

	return &Stamper{
		clock: clock,
		last:  -1,
	}
}

// Next returns the next stamp.
func (s *Stamper) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if now <= s.last {
		now = s.last + 1
	}
	s.last = now

	return now
}
