package generation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	ErrNoAPIKey    = errors.New("generation: api key not configured")
	ErrEmptyOutput = errors.New("generation: model returned no text")
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-pro"
)

type GeminiOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Seed    int64 // 0 seeds from the clock
}

// GeminiClient calls the generateContent REST endpoint.
type GeminiClient struct {
	apiKey string
	model  string
	client *resty.Client

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGeminiClient(opts GeminiOptions) *GeminiClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GeminiClient{
		apiKey: opts.APIKey,
		model:  opts.Model,
		client: resty.New().
			SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/")).
			SetTimeout(opts.Timeout).
			SetHeader("Content-Type", "application/json"),
		rng: rand.New(rand.NewSource(seed)),
	}
}

type gemPart struct {
	Text string `json:"text"`
}

type gemContent struct {
	Parts []gemPart `json:"parts"`
}

type gemRequest struct {
	Contents []gemContent `json:"contents"`
}

type gemResponse struct {
	Candidates []struct {
		Content gemContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) prompt(req Request) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return BuildPrompt(req, g.rng)
}

func (g *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoAPIKey
	}
	body := gemRequest{Contents: []gemContent{{Parts: []gemPart{{Text: g.prompt(req)}}}}}

	var out gemResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(body).
		SetResult(&out).
		Post("/v1beta/models/" + g.model + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("generate content: status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyOutput
	}
	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyOutput
	}
	return text, nil
}
