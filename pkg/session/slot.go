package session

import "sync"

// frameSlot is a single-frame mailbox between the capture goroutine and the
// processing loop. Publishing overwrites an unconsumed frame, so the consumer
// always sees the latest one; overwritten frames are counted as drops.
type frameSlot struct {
	mu     sync.Mutex
	cond   *sync.Cond
	frame  []byte
	closed bool
	drops  uint64
}

func newFrameSlot() *frameSlot {
	s := &frameSlot{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// publish stores frame without blocking. It is a no-op after close.
func (s *frameSlot) publish(frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.frame != nil {
		s.drops++
	}
	s.frame = frame
	s.cond.Signal()
}

// take blocks until a frame is available or the slot is closed. A pending
// frame is still delivered after close; ok is false once the slot is closed
// and empty.
func (s *frameSlot) take() (frame []byte, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.frame == nil && !s.closed {
		s.cond.Wait()
	}
	if s.frame == nil {
		return nil, false
	}
	frame, s.frame = s.frame, nil
	return frame, true
}

func (s *frameSlot) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cond.Broadcast()
}

func (s *frameSlot) dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drops
}
