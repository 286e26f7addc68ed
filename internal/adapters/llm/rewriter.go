// Package llm adapts text-rewriting language models. The engine output is
// deterministic; everything here is best effort and callers keep the
// original text when a rewrite fails.
package llm

import (
	"context"
	"strings"
)

// Prompt is one rewrite request: system instructions and the text to
// rewrite.
type Prompt struct {
	Instructions string
	Body         string
}

// String renders the prompt as a single message.
func (p Prompt) String() string {
	if p.Instructions == "" {
		return p.Body
	}
	return p.Instructions + "\n\n" + p.Body
}

// Rewriter rewrites a prompt body into narrative text.
type Rewriter interface {
	Rewrite(ctx context.Context, p Prompt) (string, error)
}

// Passthrough returns the body unchanged. It is the rewriter used when no
// provider is configured.
type Passthrough struct{}

// Rewrite implements Rewriter.
func (Passthrough) Rewrite(ctx context.Context, p Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(p.Body), nil
}

// RewriterFunc adapts a function to Rewriter.
type RewriterFunc func(ctx context.Context, p Prompt) (string, error)

// Rewrite implements Rewriter.
func (f RewriterFunc) Rewrite(ctx context.Context, p Prompt) (string, error) {
	return f(ctx, p)
}
