package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/okian/carta/pkg/logger"
)

// Provider names.
const (
	ProviderNone  = "none"
	ProviderGenAI = "genai"
)

const defaultModel = "gemini-2.5-flash"

// generator is the slice of the genai models service Gemini uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini rewrites through the Google GenAI API.
type Gemini struct {
	models      generator
	model       string
	timeout     time.Duration
	temperature float32
	log         logger.Logger
}

// NewGemini creates a Gemini rewriter.
func NewGemini(ctx context.Context, apiKey, model string, opts ...Option) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGemini(client.Models, model, opts...), nil
}

func newGemini(models generator, model string, opts ...Option) *Gemini {
	if model == "" {
		model = defaultModel
	}
	g := &Gemini{
		models:      models,
		model:       model,
		temperature: 0.7,
		log:         logger.Get().Named("llm"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Rewrite implements Rewriter.
func (g *Gemini) Rewrite(ctx context.Context, p Prompt) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	temp := g.temperature
	cfg := &genai.GenerateContentConfig{Temperature: &temp}
	if p.Instructions != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.Instructions, genai.RoleUser)
	}

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(p.Body), cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	g.log.Debug(ctx, "rewrite completed",
		logger.String("model", g.model),
		logger.Int("chars", len(text)),
		logger.Int("latency_ms", int(time.Since(start).Milliseconds())))
	return text, nil
}

// New returns the rewriter for provider. The empty provider and "none"
// select Passthrough.
func New(ctx context.Context, provider, model, apiKey string, opts ...Option) (Rewriter, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderNone:
		return Passthrough{}, nil
	case ProviderGenAI:
		g, err := NewGemini(ctx, apiKey, model, opts...)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
}
