package repository

import "github.com/okian/carta/pkg/logger"

// Option applies a configuration option to a Store.
type Option func(*Store)

// WithName labels the store in logs and metrics.
func WithName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}
