package analysis

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

const narrativeSystemPrompt = "Você é um consultor sênior especializado em lançamento de produtos digitais no mercado brasileiro. Responda somente com JSON válido seguindo o esquema solicitado."

// NarrativeGenerator produces the free-text market narrative for a request.
// The raw text is untrusted and goes through the coercion chain before use.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicGenerator struct {
	messages AnthropicMessager
	limiter  *rate.Limiter
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

func NewAnthropicGeneratorFromEnv() (*AnthropicGenerator, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	return &AnthropicGenerator{
		messages: newAnthropicClient(apiKey),
		limiter:  rate.NewLimiter(rate.Limit(1), 3),
	}, nil
}

func (g *AnthropicGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	resp, err := g.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		MaxTokens:   8192,
		System:      []anthropic.TextBlockParam{{Text: narrativeSystemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(BuildNarrativePrompt(req)))},
		Temperature: anthropic.Float(0.3),
		TopP:        anthropic.Float(0.8),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// IsDeadlineFailure reports whether a narrative failure was the provider
// deadline rather than a provider-side error. Both take the same
// default-substitution path; the distinction only matters for logs.
func IsDeadlineFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
