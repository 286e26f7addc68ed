package llm

import (
	"time"

	"github.com/okian/carta/pkg/logger"
)

// Option configures a Gemini rewriter.
type Option func(*Gemini)

// WithTimeout bounds each call.
func WithTimeout(d time.Duration) Option {
	return func(g *Gemini) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(g *Gemini) {
		if t >= 0 {
			g.temperature = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Gemini) {
		if l != nil {
			g.log = l
		}
	}
}
