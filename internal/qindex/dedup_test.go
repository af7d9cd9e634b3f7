package qindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
)

func TestSignature(t *testing.T) {
	assert.Equal(t, "waves-define frequency.", Signature("Waves", "Define frequency."))
	assert.Equal(t, "waves-define frequency.", Signature(" waves ", "DEFINE FREQUENCY."))
	// literal separator: these collide by construction
	assert.Equal(t, Signature("a-b", "c"), Signature("a", "b-c"))
	// halves are trimmed before joining
	assert.Equal(t, "a-b", Signature("a ", " b"))
}

func TestDedupIdempotentAdd(t *testing.T) {
	d := NewDedupTable()
	item := q("Waves", "Define frequency.", exam.Easy)

	d.Add(item)
	assert.True(t, d.Has(item))
	assert.Equal(t, 1, d.Len())

	d.Add(&exam.Question{Topic: "Waves", Text: "Define frequency.", Marks: 3})
	assert.Equal(t, 1, d.Len())
}

func TestDedupCaseAndWhitespaceInsensitive(t *testing.T) {
	d := NewDedupTable()
	d.Add(&exam.Question{Topic: "Waves", Text: "Define frequency."})

	assert.True(t, d.Has(&exam.Question{Topic: " waves ", Text: "DEFINE FREQUENCY."}))
	assert.False(t, d.Has(&exam.Question{Topic: "Waves", Text: "Define period."}))
}

func TestDedupGetReturnsLastWrite(t *testing.T) {
	d := NewDedupTable()
	first := &exam.Question{Topic: "Optics", Text: "Snell's law", Marks: 1}
	second := &exam.Question{Topic: "optics", Text: "SNELL'S LAW", Marks: 5}
	d.Add(first)
	d.Add(second)

	got, ok := d.Get(first)
	require.True(t, ok)
	assert.Same(t, second, got)

	_, ok = d.Get(&exam.Question{Topic: "Optics", Text: "other"})
	assert.False(t, ok)
}

func TestDedupClear(t *testing.T) {
	d := NewDedupTable()
	assert.NotPanics(t, d.Clear)

	item := q("Waves", "x", exam.Easy)
	d.Add(item)
	d.Clear()
	assert.False(t, d.Has(item))
	assert.Equal(t, 0, d.Len())

	d.Add(item)
	assert.True(t, d.Has(item))
}
