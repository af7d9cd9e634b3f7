package qindex

import "github.com/mind-engage/mindengage-papergen/internal/exam"

// DifficultyHeap is an array-backed binary min-heap keyed on exam.Rank.
// Equal ranks come out in no particular order.
//
// container/heap is not used: the sift-down tie-break (left child wins) has to
// stay fixed, and heap.Fix/heap.Pop do not promise that.
type DifficultyHeap struct {
	items []*exam.Question
}

func NewDifficultyHeap() *DifficultyHeap {
	return &DifficultyHeap{}
}

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

func (h *DifficultyHeap) rank(i int) int { return exam.Rank(h.items[i].Difficulty) }

func (h *DifficultyHeap) swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *DifficultyHeap) Insert(q *exam.Question) {
	h.items = append(h.items, q)
	h.up(len(h.items) - 1)
}

func (h *DifficultyHeap) up(i int) {
	for i > 0 {
		p := parent(i)
		if h.rank(i) >= h.rank(p) {
			return
		}
		h.swap(i, p)
		i = p
	}
}

func (h *DifficultyHeap) down(i int) {
	n := len(h.items)
	for {
		smallest := i
		if l := left(i); l < n && h.rank(l) < h.rank(smallest) {
			smallest = l
		}
		if r := right(i); r < n && h.rank(r) < h.rank(smallest) {
			smallest = r
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}

// ExtractMin removes and returns the easiest question; ok is false when empty.
func (h *DifficultyHeap) ExtractMin() (q *exam.Question, ok bool) {
	n := len(h.items)
	if n == 0 {
		return nil, false
	}
	top := h.items[0]
	last := n - 1
	h.items[0] = h.items[last]
	h.items[last] = nil
	h.items = h.items[:last]
	if last > 0 {
		h.down(0)
	}
	return top, true
}

func (h *DifficultyHeap) Peek() (*exam.Question, bool) {
	if len(h.items) == 0 {
		return nil, false
	}
	return h.items[0], true
}

func (h *DifficultyHeap) Size() int { return len(h.items) }

// Drain extracts everything, easiest first, leaving the heap empty.
func (h *DifficultyHeap) Drain() []*exam.Question {
	out := make([]*exam.Question, 0, len(h.items))
	for {
		q, ok := h.ExtractMin()
		if !ok {
			return out
		}
		out = append(out, q)
	}
}

// Clone copies the backing array; the questions themselves are shared.
func (h *DifficultyHeap) Clone() *DifficultyHeap {
	items := make([]*exam.Question, len(h.items))
	copy(items, h.items)
	return &DifficultyHeap{items: items}
}
