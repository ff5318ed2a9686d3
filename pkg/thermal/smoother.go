package thermal

// SmoothWindow is the number of frames averaged by the temporal smoother.
const SmoothWindow = 3

// Smoother averages the most recent frames to suppress per-frame sensor noise.
// The mean is recomputed from the whole window on every push; there is no
// running sum to drift.
type Smoother struct {
	size   int
	window []*Frame
}

// NewSmoother creates a Smoother holding at most size frames.
func NewSmoother(size int) *Smoother {
	if size < 1 {
		size = 1
	}
	return &Smoother{size: size, window: make([]*Frame, 0, size)}
}

// Push appends f, evicting the oldest frame when full, and returns the
// elementwise mean of the window. A frame of different geometry clears the
// window first.
func (s *Smoother) Push(f *Frame) *Frame {
	if len(s.window) > 0 && (s.window[0].Width != f.Width || s.window[0].Height != f.Height) {
		s.Reset()
	}
	if len(s.window) == s.size {
		copy(s.window, s.window[1:])
		s.window = s.window[:s.size-1]
	}
	s.window = append(s.window, f)

	out := NewFrame(f.Width, f.Height)
	n := float64(len(s.window))
	for i := range out.Pix {
		var sum float64
		for _, w := range s.window {
			sum += float64(w.Pix[i])
		}
		out.Pix[i] = float32(sum / n)
	}
	return out
}

// Len returns the number of frames currently in the window.
func (s *Smoother) Len() int { return len(s.window) }

// Reset empties the window.
func (s *Smoother) Reset() {
	for i := range s.window {
		s.window[i] = nil
	}
	s.window = s.window[:0]
}
