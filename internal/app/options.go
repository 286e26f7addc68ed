package service

import (
	"time"

	"github.com/okian/carta/internal/adapters/llm"
	"github.com/okian/carta/internal/adapters/repository"
	"github.com/okian/carta/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithPaths sets where Start loads the knowledge base from.
func WithPaths(p repository.Paths) Option {
	return func(s *Service) {
		s.paths = p
	}
}

// WithKnowledgeBase injects an already loaded knowledge base; Start then
// skips loading.
func WithKnowledgeBase(kb *repository.KnowledgeBase) Option {
	return func(s *Service) {
		if kb != nil {
			s.kb = kb
		}
	}
}

// WithRewriter sets the narrative rewriter.
func WithRewriter(r llm.Rewriter) Option {
	return func(s *Service) {
		if r != nil {
			s.rewriter = r
		}
	}
}

// WithWorkerCount sets the number of concurrent rewrite calls.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithRewriteTimeout bounds each rewrite call.
func WithRewriteTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.rewriteTimeout = d
		}
	}
}

// WithRewriteItems enables rewriting every item before the narrative.
func WithRewriteItems(enabled bool) Option {
	return func(s *Service) {
		s.rewriteItems = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
