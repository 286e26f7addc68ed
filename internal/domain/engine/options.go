package engine

import (
	"github.com/okian/carta/internal/domain/rules"
	"github.com/okian/carta/pkg/logger"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the complex pattern evaluator.
func WithRules(r *rules.Evaluator) Option {
	return func(e *Engine) {
		if r != nil {
			e.rules = r
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}
