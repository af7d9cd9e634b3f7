package stats

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
)

// Recorder feeds an Accumulator on a best-effort basis. The first error or
// panic disables it; generation carries on without statistics.
type Recorder struct {
	acc    Accumulator
	log    *zap.SugaredLogger
	failed bool
}

func NewRecorder(acc Accumulator, log *zap.SugaredLogger) *Recorder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Recorder{acc: acc, log: log, failed: acc == nil}
}

func (r *Recorder) Record(q exam.Question) {
	if r.failed {
		return
	}
	if err := r.guard(func() error { return r.acc.Record(q.Marks, exam.Rank(q.Difficulty)) }); err != nil {
		r.failed = true
		r.log.Warnw("statistics disabled for this paper", "question", q.ID, "err", err)
	}
}

// Snapshot returns the aggregate, or ok=false if the accumulator failed.
func (r *Recorder) Snapshot() (s exam.Stats, ok bool) {
	if r.failed {
		return exam.Stats{}, false
	}
	err := r.guard(func() error {
		s = exam.Stats{
			TotalMarks:        r.acc.TotalMarks(),
			AverageDifficulty: r.acc.AverageDifficulty(),
			TopMarks:          r.acc.TopMarks(),
		}
		return nil
	})
	if err != nil {
		r.failed = true
		r.log.Warnw("statistics snapshot failed", "err", err)
		return exam.Stats{}, false
	}
	return s, true
}

func (r *Recorder) Failed() bool { return r.failed }

func (r *Recorder) guard(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("accumulator panic: %v", p)
		}
	}()
	return fn()
}
