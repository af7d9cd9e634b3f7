package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
)

func TestEvaluatorEmpty(t *testing.T) {
	e := NewEvaluator()
	assert.Equal(t, 0, e.TotalMarks())
	assert.Equal(t, 0, e.AverageDifficulty())
	assert.Equal(t, 0, e.TopMarks())
	assert.NotPanics(t, e.Undo)
}

func TestEvaluatorAggregates(t *testing.T) {
	e := NewEvaluator()
	require.NoError(t, e.Record(1, 1))
	require.NoError(t, e.Record(5, 3))
	require.NoError(t, e.Record(3, 2))
	require.NoError(t, e.Record(2, 3))

	assert.Equal(t, 11, e.TotalMarks())
	assert.Equal(t, 2, e.AverageDifficulty()) // 9/4 truncated
	assert.Equal(t, 5, e.TopMarks())          // first hard record wins
}

func TestEvaluatorUndo(t *testing.T) {
	e := NewEvaluator()
	require.NoError(t, e.Record(1, 1))
	require.NoError(t, e.Record(8, 3))

	e.Undo()
	assert.Equal(t, 1, e.TotalMarks())
	assert.Equal(t, 1, e.TopMarks())
	assert.Equal(t, 1, e.Len())

	e.Undo()
	assert.Equal(t, 0, e.Len())
}

func TestEvaluatorRejectsBadInput(t *testing.T) {
	e := NewEvaluator()
	assert.ErrorIs(t, e.Record(0, 2), ErrInvalidRecord)
	assert.ErrorIs(t, e.Record(3, 4), ErrInvalidRecord)
	assert.Equal(t, 0, e.Len())
}

type brokenAccumulator struct {
	Evaluator
	panicOnRecord bool
}

func (b *brokenAccumulator) Record(marks, rank int) error {
	if b.panicOnRecord {
		panic("native module unloaded")
	}
	return errors.New("unavailable")
}

func TestRecorderDegrades(t *testing.T) {
	for _, panics := range []bool{false, true} {
		r := NewRecorder(&brokenAccumulator{panicOnRecord: panics}, nil)
		assert.NotPanics(t, func() { r.Record(exam.Question{Marks: 3, Difficulty: exam.Hard}) })
		assert.True(t, r.Failed())

		_, ok := r.Snapshot()
		assert.False(t, ok)
	}
}

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder(NewEvaluator(), nil)
	r.Record(exam.Question{Marks: 1, Difficulty: exam.Easy})
	r.Record(exam.Question{Marks: 5, Difficulty: exam.Hard})

	s, ok := r.Snapshot()
	require.True(t, ok)
	assert.Equal(t, exam.Stats{TotalMarks: 6, AverageDifficulty: 2, TopMarks: 5}, s)
}

func TestRecorderNilAccumulator(t *testing.T) {
	r := NewRecorder(nil, nil)
	r.Record(exam.Question{Marks: 1})
	_, ok := r.Snapshot()
	assert.False(t, ok)
}
