package generation

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Fallback retries the wrapped Generator and, once attempts run out, answers
// with BasicQuestion. Only a cancelled context surfaces as an error.
type Fallback struct {
	Next     Generator
	Attempts int
	Backoff  time.Duration
	Log      *zap.SugaredLogger
}

func NewFallback(next Generator, attempts int, backoff time.Duration, log *zap.SugaredLogger) *Fallback {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if attempts < 1 {
		attempts = 1
	}
	return &Fallback{Next: next, Attempts: attempts, Backoff: backoff, Log: log}
}

func (f *Fallback) Generate(ctx context.Context, req Request) (string, error) {
	if f.Next == nil {
		return BasicQuestion(req), nil
	}
	var lastErr error
	for attempt := 0; attempt < f.Attempts; attempt++ {
		if attempt > 0 && f.Backoff > 0 {
			t := time.NewTimer(f.Backoff)
			select {
			case <-ctx.Done():
				t.Stop()
				return "", ctx.Err()
			case <-t.C:
			}
		}
		text, err := f.Next.Generate(ctx, req)
		if err == nil {
			return text, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		lastErr = err
		if errors.Is(err, ErrNoAPIKey) {
			break
		}
		f.Log.Debugw("generation attempt failed", "topic", req.Topic, "attempt", attempt+1, "err", err)
	}
	f.Log.Warnw("falling back to basic question", "topic", req.Topic, "marks", req.Marks, "err", lastErr)
	return BasicQuestion(req), nil
}
