package qindex

import "github.com/mind-engage/mindengage-papergen/internal/exam"

// Index files each question into all three structures at once.
type Index struct {
	Topics *TopicTrie
	Order  *DifficultyHeap
	Seen   *DedupTable
}

func New() *Index {
	return &Index{
		Topics: NewTopicTrie(),
		Order:  NewDifficultyHeap(),
		Seen:   NewDedupTable(),
	}
}

// Add inserts q unless a question with the same signature is already present.
// It reports whether q was inserted.
func (ix *Index) Add(q *exam.Question) bool {
	if ix.Seen.Has(q) {
		return false
	}
	ix.Seen.Add(q)
	ix.Topics.Insert(q.Topic, q)
	ix.Order.Insert(q)
	return true
}

func (ix *Index) Search(topic string) []*exam.Question { return ix.Topics.Search(topic) }

func (ix *Index) RelatedTopics(prefix string) []string { return ix.Topics.FindRelatedTopics(prefix) }

// EasyFirst drains a copy of the heap so the index keeps its contents.
func (ix *Index) EasyFirst() []*exam.Question { return ix.Order.Clone().Drain() }

func (ix *Index) Len() int { return ix.Order.Size() }
