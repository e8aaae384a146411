package engine

import (
	"sync"
	"time"

	"github.com/ftahirops/mtop/model"
)

// Sample is one KPI computation kept for trend display.
type Sample struct {
	At  time.Time
	KPI model.KPIResult
}

// History is a ring buffer of KPI samples, one per reload.
type History struct {
	buf  []Sample
	head int
	size int
	cap  int
	mu   sync.RWMutex
}

// NewHistory creates a ring buffer with the given capacity.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buf: make([]Sample, capacity),
		cap: capacity,
	}
}

// Push adds a sample to the ring buffer.
func (h *History) Push(s Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.head] = s
	h.head = (h.head + 1) % h.cap
	if h.size < h.cap {
		h.size++
	}
}

// Len returns the number of samples stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Latest returns a copy of the most recent sample.
func (h *History) Latest() *Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.size == 0 {
		return nil
	}
	s := h.buf[(h.head-1+h.cap)%h.cap]
	return &s
}

// Previous returns a copy of the sample before the most recent one.
func (h *History) Previous() *Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.size < 2 {
		return nil
	}
	s := h.buf[(h.head-2+h.cap)%h.cap]
	return &s
}

// Series returns fn applied to every sample, oldest first.
func (h *History) Series(fn func(model.KPIResult) float64) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]float64, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = fn(h.buf[(h.head-h.size+i+h.cap)%h.cap].KPI)
	}
	return out
}
