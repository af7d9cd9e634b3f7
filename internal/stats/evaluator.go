package stats

import (
	"container/heap"
	"errors"
)

// Accumulator collects (marks, difficulty rank) pairs for a paper.
type Accumulator interface {
	Record(marks, rank int) error
	TotalMarks() int
	AverageDifficulty() int
	TopMarks() int
	Undo()
}

var ErrInvalidRecord = errors.New("stats: marks must be positive and rank in 1..3")

type entry struct {
	marks int
	rank  int
	seq   int
	pos   int
}

// byRank keeps the hardest entry on top.
type byRank []*entry

func (b byRank) Len() int { return len(b) }
func (b byRank) Less(i, j int) bool {
	if b[i].rank != b[j].rank {
		return b[i].rank > b[j].rank
	}
	return b[i].seq < b[j].seq
}
func (b byRank) Swap(i, j int) {
	b[i], b[j] = b[j], b[i]
	b[i].pos = i
	b[j].pos = j
}
func (b *byRank) Push(x any) {
	e := x.(*entry)
	e.pos = len(*b)
	*b = append(*b, e)
}
func (b *byRank) Pop() any {
	old := *b
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*b = old[:n-1]
	return e
}

// Evaluator is the in-process Accumulator: a max-queue on rank plus a history
// stack so the latest record can be withdrawn.
type Evaluator struct {
	queue   byRank
	history []*entry
	seq     int
	total   int
	rankSum int
}

func NewEvaluator() *Evaluator { return &Evaluator{} }

func (e *Evaluator) Record(marks, rank int) error {
	if marks <= 0 || rank < 1 || rank > 3 {
		return ErrInvalidRecord
	}
	e.seq++
	it := &entry{marks: marks, rank: rank, seq: e.seq}
	heap.Push(&e.queue, it)
	e.history = append(e.history, it)
	e.total += marks
	e.rankSum += rank
	return nil
}

func (e *Evaluator) TotalMarks() int { return e.total }

// AverageDifficulty truncates toward zero; 0 when nothing was recorded.
func (e *Evaluator) AverageDifficulty() int {
	if len(e.queue) == 0 {
		return 0
	}
	return e.rankSum / len(e.queue)
}

// TopMarks is the marks value of the hardest recorded question.
func (e *Evaluator) TopMarks() int {
	if len(e.queue) == 0 {
		return 0
	}
	return e.queue[0].marks
}

func (e *Evaluator) Undo() {
	n := len(e.history)
	if n == 0 {
		return
	}
	it := e.history[n-1]
	e.history = e.history[:n-1]
	heap.Remove(&e.queue, it.pos)
	e.total -= it.marks
	e.rankSum -= it.rank
}

func (e *Evaluator) Len() int { return len(e.queue) }
