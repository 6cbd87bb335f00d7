package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type fakeMessager struct {
	params anthropic.MessageNewParams
	resp   *anthropic.Message
	err    error
}

func (f *fakeMessager) New(_ context.Context, params anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	f.params = params
	return f.resp, f.err
}

func TestAnthropicGeneratorConcatenatesTextBlocks(t *testing.T) {
	fake := &fakeMessager{resp: &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: `{"avatar":`},
			{Type: "tool_use"},
			{Type: "text", Text: ` {}}`},
		},
	}}
	g := &AnthropicGenerator{messages: fake}

	out, err := g.Generate(context.Background(), Request{Niche: "yoga", Product: "Curso X"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != `{"avatar": {}}` {
		t.Fatalf("got %q", out)
	}
	if fake.params.MaxTokens != 8192 {
		t.Fatalf("max tokens: got %d", fake.params.MaxTokens)
	}
	prompt := fake.params.Messages[0].Content[0].OfText.Text
	if !strings.Contains(prompt, "yoga") || !strings.Contains(prompt, "Curso X") {
		t.Fatal("prompt must embed the request fields")
	}
}

func TestAnthropicGeneratorPropagatesError(t *testing.T) {
	g := &AnthropicGenerator{messages: &fakeMessager{err: errors.New("overloaded")}}
	if _, err := g.Generate(context.Background(), Request{Niche: "yoga"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewAnthropicGeneratorFromEnvRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := NewAnthropicGeneratorFromEnv(); err == nil {
		t.Fatal("expected error without api key")
	}
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	g, err := NewAnthropicGeneratorFromEnv()
	if err != nil {
		t.Fatalf("NewAnthropicGeneratorFromEnv: %v", err)
	}
	if g.limiter == nil {
		t.Fatal("rate limiter must be configured")
	}
}

func TestIsDeadlineFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if IsDeadlineFailure(ctx.Err()) {
		t.Fatal("cancellation is not a deadline failure")
	}
	if !IsDeadlineFailure(context.DeadlineExceeded) {
		t.Fatal("deadline exceeded must be detected")
	}
}

func TestBuildNarrativePromptDefaults(t *testing.T) {
	prompt := BuildNarrativePrompt(Request{Niche: "yoga"})
	for _, want := range []string{"Não especificado", "Não definido", "FORMATO DE RESPOSTA", "```json"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
