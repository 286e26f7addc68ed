package repository

import "errors"

// Sentinel kinds for knowledge base loading.
var (
	ErrSourceMissing   = errors.New("knowledge base source missing")
	ErrSourceMalformed = errors.New("knowledge base source malformed")
	ErrDataDir         = errors.New("knowledge base directory not found")
)
