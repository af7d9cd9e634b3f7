package qindex

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
)

const (
	DefaultHistorySize   = 100000
	DefaultHistoryFPRate = 0.001
)

// History remembers which question signatures were handed out by earlier
// papers. It is a bloom filter, so memory stays fixed however many papers are
// generated; Seen may report a false positive but never a false negative.
// Unlike the per-paper index it is safe for concurrent use.
type History struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	marked uint
}

// NewHistory sizes the filter for n signatures at false-positive rate fp.
// Non-positive arguments fall back to the defaults.
func NewHistory(n uint, fp float64) *History {
	if n == 0 {
		n = DefaultHistorySize
	}
	if fp <= 0 || fp >= 1 {
		fp = DefaultHistoryFPRate
	}
	return &History{filter: bloom.NewWithEstimates(n, fp)}
}

func (h *History) Seen(q *exam.Question) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.filter.TestString(signatureOf(q))
}

// Mark records q and reports whether it was (probably) seen before.
func (h *History) Mark(q *exam.Question) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	seen := h.filter.TestAndAddString(signatureOf(q))
	h.marked++
	return seen
}

// Marked counts Mark calls, repeats included.
func (h *History) Marked() uint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.marked
}

// Reset forgets everything.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filter.ClearAll()
	h.marked = 0
}
