package generation

import (
	"context"
	"fmt"
	"strings"
)

// Request carries everything the text model needs for one question.
type Request struct {
	Topic      string
	Subtopics  []string
	Difficulty string
	Grade      int
	Type       string // mcq|short|long
	Marks      int
}

// Generator produces question text. Implementations should be safe to retry.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) { return f(ctx, req) }

// BasicQuestion is the text used when no model output is available.
func BasicQuestion(req Request) string {
	return fmt.Sprintf("Create a practical application of %s focusing on %s", req.Topic, strings.Join(req.Subtopics, ", "))
}

// Static answers every request locally; used offline and in tests.
type Static struct{}

func (Static) Generate(_ context.Context, req Request) (string, error) {
	return fmt.Sprintf("[%s, %d marks, %s] %s", req.Type, req.Marks, req.Difficulty, BasicQuestion(req)), nil
}
