package tips

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fintrack/internal/core"

	openai "github.com/sashabaranov/go-openai"
)

type fakeCompletionClient struct {
	response string
	err      error
	prompt   string
	calls    int
}

func (f *fakeCompletionClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if len(req.Messages) > 0 {
		f.prompt = req.Messages[0].Content
	}
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.response}},
		},
	}, nil
}

func snapshot() []Snapshot {
	return []Snapshot{
		{Category: "food", Type: core.Expense, Amount: core.Money{Cents: 1000}},
		{Category: "salary", Type: core.Income, Amount: core.Money{Cents: 100000}},
	}
}

func TestSuggestNilInput(t *testing.T) {
	advisor := NewAdvisor("", "gpt-4o-mini", false, time.Second)
	if _, err := advisor.Suggest(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSuggestMockMode(t *testing.T) {
	advisor := NewAdvisor("sk-test", "gpt-4o-mini", true, time.Second)

	result, err := advisor.Suggest(context.Background(), snapshot())
	if err != nil {
		t.Fatalf("mock mode must not fail: %v", err)
	}
	if result.Source != SourceMock || result.Tips == "" {
		t.Fatalf("expected deterministic mock result, got %+v", result)
	}

	// empty transaction set is valid input
	empty, err := advisor.Suggest(context.Background(), []Snapshot{})
	if err != nil {
		t.Fatalf("empty snapshot must not fail: %v", err)
	}
	if empty != result {
		t.Fatalf("mock result must be fixed, got %+v vs %+v", empty, result)
	}
}

func TestSuggestNoAPIKeyForcesMock(t *testing.T) {
	advisor := NewAdvisor("", "gpt-4o-mini", false, time.Second)

	result, err := advisor.Suggest(context.Background(), snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != SourceMock {
		t.Fatalf("missing API key must take the deterministic path, got %s", result.Source)
	}
}

func TestSuggestGenerator(t *testing.T) {
	fake := &fakeCompletionClient{response: "  Spend less on food.  "}
	advisor := &Advisor{client: fake, model: "gpt-4o-mini", timeout: time.Second}

	result, err := advisor.Suggest(context.Background(), snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != SourceGenerator {
		t.Fatalf("expected generator source, got %s", result.Source)
	}
	if result.Tips != "Spend less on food." {
		t.Fatalf("expected trimmed completion, got %q", result.Tips)
	}

	if !strings.Contains(fake.prompt, "Category: food, Type: expense, Amount: 10.00") {
		t.Fatalf("prompt missing transaction line:\n%s", fake.prompt)
	}
	if !strings.Contains(fake.prompt, "budget tips") {
		t.Fatalf("prompt missing instruction:\n%s", fake.prompt)
	}
}

func TestSuggestCachesGeneratorResults(t *testing.T) {
	fake := &fakeCompletionClient{response: "Spend less on food."}
	advisor := NewAdvisor("sk-test", "gpt-4o-mini", false, time.Second)
	advisor.client = fake

	first, err := advisor.Suggest(context.Background(), snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := advisor.Suggest(context.Background(), snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Fatalf("expected identical cached result, got %+v vs %+v", first, second)
	}
	if fake.calls != 1 {
		t.Fatalf("expected a single generator call, got %d", fake.calls)
	}

	// failed calls are not cached
	fake.err = errors.New("boom")
	if _, err := advisor.Suggest(context.Background(), []Snapshot{{Category: "rent", Type: core.Expense, Amount: core.Money{Cents: 90000}}}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	fake.err = nil
	if _, err := advisor.Suggest(context.Background(), []Snapshot{{Category: "rent", Type: core.Expense, Amount: core.Money{Cents: 90000}}}); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if fake.calls != 3 {
		t.Fatalf("expected the failed prompt to be retried, got %d calls", fake.calls)
	}
}

func TestSuggestGeneratorFailureFallsBack(t *testing.T) {
	fake := &fakeCompletionClient{err: errors.New("429 quota exceeded")}
	advisor := &Advisor{client: fake, model: "gpt-4o-mini", timeout: time.Second}

	result, err := advisor.Suggest(context.Background(), snapshot())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if result.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", result.Source)
	}
	if result.Tips == "" {
		t.Fatalf("fallback suggestion must be non-empty")
	}
}

func TestSuggestEmptyCompletionFallsBack(t *testing.T) {
	fake := &fakeCompletionClient{response: "   "}
	advisor := &Advisor{client: fake, model: "gpt-4o-mini", timeout: time.Second}

	result, err := advisor.Suggest(context.Background(), snapshot())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if result.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", result.Source)
	}
}
