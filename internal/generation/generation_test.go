package generation

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = Request{
	Topic:      "Thermodynamics",
	Subtopics:  []string{"Heat engines", "Entropy"},
	Difficulty: "hard",
	Grade:      12,
	Type:       "long",
	Marks:      8,
}

func TestTemplatesByMarks(t *testing.T) {
	assert.Equal(t, highTemplates, templatesFor(8))
	assert.Equal(t, highTemplates, templatesFor(10))
	assert.Equal(t, mediumTemplates, templatesFor(4))
	assert.Equal(t, mediumTemplates, templatesFor(7))
	assert.Equal(t, lowTemplates, templatesFor(3))
	assert.Equal(t, lowTemplates, templatesFor(0))
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(sample, rand.New(rand.NewSource(1)))
	assert.Contains(t, p, "Thermodynamics")
	assert.Contains(t, p, "Heat engines, Entropy")
	assert.Contains(t, p, "Marks: 8 marks")
	assert.Contains(t, p, "Grade Level: 12")
	assert.Contains(t, p, "Total marks should add up to 8")
	assert.NotContains(t, p, "{topic}")
	assert.NotContains(t, p, "{subtopics}")
}

func TestBasicQuestion(t *testing.T) {
	assert.Equal(t, "Create a practical application of Thermodynamics focusing on Heat engines, Entropy", BasicQuestion(sample))
}

func TestGeminiClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k1", r.URL.Query().Get("key"))

		var body gemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		assert.Contains(t, body.Contents[0].Parts[0].Text, "Thermodynamics")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Scenario: a steam engine "},{"text":"runs."}]}}]}`))
	}))
	defer srv.Close()

	g := NewGeminiClient(GeminiOptions{APIKey: "k1", BaseURL: srv.URL, Model: "test-model", Seed: 3})
	text, err := g.Generate(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, "Scenario: a steam engine runs.", text)
}

func jsonServer(status int, payload string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
}

func TestGeminiClientErrors(t *testing.T) {
	failing := jsonServer(http.StatusInternalServerError, `{"error":"boom"}`)
	defer failing.Close()
	empty := jsonServer(http.StatusOK, `{"candidates":[]}`)
	defer empty.Close()

	_, err := NewGeminiClient(GeminiOptions{BaseURL: failing.URL}).Generate(context.Background(), sample)
	assert.ErrorIs(t, err, ErrNoAPIKey)

	_, err = NewGeminiClient(GeminiOptions{APIKey: "k", BaseURL: failing.URL}).Generate(context.Background(), sample)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "status 500"))

	_, err = NewGeminiClient(GeminiOptions{APIKey: "k", BaseURL: empty.URL}).Generate(context.Background(), sample)
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestFallbackRetriesThenSucceeds(t *testing.T) {
	var calls int32
	next := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return "", errors.New("flaky")
		}
		return "generated", nil
	})
	text, err := NewFallback(next, 3, time.Millisecond, nil).Generate(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, "generated", text)
	assert.EqualValues(t, 3, calls)
}

func TestFallbackReturnsBasicQuestion(t *testing.T) {
	var calls int32
	next := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", errors.New("down")
	})
	text, err := NewFallback(next, 2, 0, nil).Generate(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, BasicQuestion(sample), text)
	assert.EqualValues(t, 2, calls)
}

func TestFallbackStopsOnMissingKey(t *testing.T) {
	var calls int32
	next := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", ErrNoAPIKey
	})
	text, err := NewFallback(next, 5, 0, nil).Generate(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, BasicQuestion(sample), text)
	assert.EqualValues(t, 1, calls)
}

func TestFallbackHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	next := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		return "", ctx.Err()
	})
	_, err := NewFallback(next, 3, time.Second, nil).Generate(ctx, sample)
	assert.ErrorIs(t, err, context.Canceled)
}
