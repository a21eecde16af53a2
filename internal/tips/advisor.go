// Package tips produces budgeting suggestions from a transaction snapshot.
// The external generator is best-effort: when it is unconfigured, mocked, or
// failing, a deterministic suggestion is returned instead and the caller's
// read path is never blocked.
package tips

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/core"

	openai "github.com/sashabaranov/go-openai"
)

// Source says which path produced a suggestion: the external generator, the
// deterministic mock, or the fallback taken on generator failure.
type Source string

const (
	SourceGenerator Source = "generator"
	SourceMock      Source = "mock"
	SourceFallback  Source = "fallback"
)

const (
	mockSuggestion     = "Mock tip: try reducing food and entertainment expenses to save more."
	fallbackSuggestion = "Reduce high expenses like dining out and shopping to save more."

	maxCompletionTokens = 200

	cacheSize = 128
	cacheTTL  = 10 * time.Minute
)

var (
	// ErrInvalidInput means the snapshot is not a well-formed sequence.
	ErrInvalidInput = errors.New("transactions data required")
	// ErrUnavailable accompanies a fallback Result so callers can log the
	// degradation; it is never fatal to the surrounding operation.
	ErrUnavailable = errors.New("advisory generator unavailable")
)

// Snapshot is the advisory view of a transaction: no owner, no id.
type Snapshot struct {
	Category string               `json:"category"`
	Type     core.TransactionType `json:"type"`
	Amount   core.Money           `json:"amount"`
}

// Result is the explicit two-path outcome: a suggestion plus where it came
// from, so genuine tips are distinguishable from fallback content.
type Result struct {
	Tips   string `json:"tips"`
	Source Source `json:"source"`
}

type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Advisor generates suggestions via an OpenAI-compatible chat completion
// endpoint, with a bounded timeout per call.
type Advisor struct {
	client  completionClient
	model   string
	mock    bool
	timeout time.Duration
	recent  *cache.LRU[Result]
}

// NewAdvisor builds an advisor. With an empty apiKey or mock set, every call
// takes the deterministic path and no client is created.
func NewAdvisor(apiKey, model string, mock bool, timeout time.Duration) *Advisor {
	a := &Advisor{
		model:   model,
		mock:    mock || apiKey == "",
		timeout: timeout,
	}
	if !a.mock {
		a.client = openai.NewClient(apiKey)
		a.recent = cache.NewLRU[Result](cacheSize, cacheTTL)
	}
	return a
}

// Suggest returns budgeting tips for the snapshot. On generator failure the
// Result still carries the fallback suggestion and the returned error is
// ErrUnavailable; callers log it and serve the Result regardless.
func (a *Advisor) Suggest(ctx context.Context, transactions []Snapshot) (Result, error) {
	if transactions == nil {
		return Result{}, ErrInvalidInput
	}

	if a.mock {
		return Result{Tips: mockSuggestion, Source: SourceMock}, nil
	}

	prompt := buildPrompt(transactions)
	if a.recent != nil {
		if cached, ok := a.recent.Get(prompt); ok {
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: maxCompletionTokens,
	})
	if err != nil {
		return Result{Tips: fallbackSuggestion, Source: SourceFallback},
			fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return Result{Tips: fallbackSuggestion, Source: SourceFallback},
			fmt.Errorf("%w: empty completion", ErrUnavailable)
	}

	result := Result{
		Tips:   strings.TrimSpace(resp.Choices[0].Message.Content),
		Source: SourceGenerator,
	}
	if a.recent != nil {
		a.recent.Set(prompt, result)
	}
	return result, nil
}

// buildPrompt renders the snapshot as a natural-language description, one
// transaction per line.
func buildPrompt(transactions []Snapshot) string {
	var b strings.Builder
	b.WriteString("I have the following transactions:\n")
	for _, t := range transactions {
		fmt.Fprintf(&b, "Category: %s, Type: %s, Amount: %s\n", t.Category, t.Type, t.Amount)
	}
	b.WriteString("Give me personalized budget tips based on this spending.")
	return b.String()
}
