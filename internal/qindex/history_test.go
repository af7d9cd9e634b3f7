package qindex

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
)

func TestHistoryMark(t *testing.T) {
	h := NewHistory(1000, 0.001)
	item := q("Waves", "Define frequency.", exam.Easy)

	assert.False(t, h.Seen(item))
	assert.False(t, h.Mark(item))
	assert.True(t, h.Seen(item))
	// same signature, different spelling
	assert.True(t, h.Mark(&exam.Question{Topic: " waves ", Text: "DEFINE FREQUENCY."}))
	assert.Equal(t, uint(2), h.Marked())

	h.Reset()
	assert.False(t, h.Seen(item))
	assert.Equal(t, uint(0), h.Marked())
}

// Everything marked must test as seen; unmarked signatures mostly do not.
func TestHistoryNoFalseNegatives(t *testing.T) {
	h := NewHistory(0, 0)
	var items []*exam.Question
	for i := 0; i < 2000; i++ {
		it := q(fmt.Sprintf("topic %d", i), fmt.Sprintf("question %d", i), exam.Medium)
		items = append(items, it)
		h.Mark(it)
	}
	for _, it := range items {
		assert.True(t, h.Seen(it), it.Topic)
	}

	fresh := 0
	for i := 0; i < 2000; i++ {
		if !h.Seen(q(fmt.Sprintf("other %d", i), "x", exam.Easy)) {
			fresh++
		}
	}
	// 0.1% target rate; allow generous slack
	assert.Greater(t, fresh, 1950)
}

func TestHistoryConcurrentMark(t *testing.T) {
	h := NewHistory(10000, 0.01)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h.Mark(q(fmt.Sprintf("w%d", w), fmt.Sprintf("%d", i), exam.Hard))
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, uint(800), h.Marked())
	assert.True(t, h.Seen(q("w3", "42", exam.Hard)))
}
