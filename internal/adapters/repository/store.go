// Package repository holds the static knowledge bases and target title
// lists. Everything here is loaded once and read-only afterwards.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/okian/carta/internal/domain/normalize"
	"github.com/okian/carta/pkg/logger"
	"github.com/okian/carta/pkg/metrics"
)

// Entry is one interpretation record.
type Entry struct {
	Title    string `json:"titulo,omitempty"`
	Text     string `json:"texto"`
	Category string `json:"tipo,omitempty"`
	File     string `json:"archivo,omitempty"`
}

// UnmarshalJSON accepts a bare string or a record.
func (e *Entry) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		*e = Entry{}
		return json.Unmarshal(b, &e.Text)
	}
	type plain Entry
	return json.Unmarshal(b, (*plain)(e))
}

var placeholderRe = regexp.MustCompile(`\{([\p{L}_]+)\}`)

// Format substitutes {name} placeholders from vars. Unknown placeholders are
// left as they are.
func (e Entry) Format(vars map[string]string) string {
	if len(vars) == 0 {
		return e.Text
	}
	return placeholderRe.ReplaceAllStringFunc(e.Text, func(m string) string {
		if v, ok := vars[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Lookup results, as recorded in metrics.
const (
	ResultHit      = "hit"
	ResultFallback = "fallback"
	ResultMiss     = "miss"
)

// Store is an immutable key to entry mapping. It is safe for concurrent use.
type Store struct {
	name    string
	log     logger.Logger
	entries map[string]Entry
	// folded maps accent-folded keys to the stored key; ambiguous folds map
	// to "".
	folded map[string]string
}

// NewStore builds a store over entries. The map is copied.
func NewStore(entries map[string]Entry, opts ...Option) *Store {
	s := &Store{
		name:    "kb",
		entries: make(map[string]Entry, len(entries)),
		folded:  make(map[string]string, len(entries)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("repository")
	}
	for k, v := range entries {
		s.entries[k] = v
		f := foldKey(k)
		if prev, taken := s.folded[f]; taken && prev != k {
			s.folded[f] = ""
			continue
		}
		s.folded[f] = k
	}
	metrics.UpdateKBEntries(s.name, len(s.entries))
	return s
}

// LoadJSON reads a JSON object of key to string or record. A missing or
// malformed file yields an empty store together with an error wrapping
// ErrSourceMissing or ErrSourceMalformed, so callers can degrade.
func LoadJSON(ctx context.Context, path string, opts ...Option) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		empty := NewStore(nil, opts...)
		if errors.Is(err, fs.ErrNotExist) {
			return empty, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return empty, fmt.Errorf("%w: %s: %w", ErrSourceMissing, path, err)
	}

	var raws map[string]json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return NewStore(nil, opts...), fmt.Errorf("%w: %s: %w", ErrSourceMalformed, path, err)
	}
	entries := make(map[string]Entry, len(raws))
	skipped := 0
	for k, v := range raws {
		var e Entry
		if err := json.Unmarshal(v, &e); err != nil {
			skipped++
			continue
		}
		entries[k] = e
	}

	s := NewStore(entries, opts...)
	s.log.Info(ctx, "knowledge base loaded",
		logger.String("name", s.name),
		logger.String("path", path),
		logger.Int("entries", s.Len()),
		logger.Int("skipped", skipped))
	return s, nil
}

// Name returns the store label.
func (s *Store) Name() string { return s.name }

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Lookup returns the entry for key. On an exact miss it tries the
// whitespace-collapsed key, the key without the preposition " a ", and
// finally an accent-insensitive match when it is unambiguous.
func (s *Store) Lookup(key string) (Entry, bool) {
	if s == nil || len(s.entries) == 0 {
		return Entry{}, false
	}
	if e, ok := s.entries[key]; ok {
		metrics.RecordKBLookup(s.name, ResultHit)
		return e, true
	}
	for _, k := range variants(key) {
		if e, ok := s.entries[k]; ok {
			metrics.RecordKBLookup(s.name, ResultFallback)
			return e, true
		}
	}
	if k := s.folded[foldKey(key)]; k != "" {
		metrics.RecordKBLookup(s.name, ResultFallback)
		return s.entries[k], true
	}
	metrics.RecordKBLookup(s.name, ResultMiss)
	return Entry{}, false
}

// LookupFirst returns the first candidate that resolves, and the candidate
// used.
func (s *Store) LookupFirst(candidates []string) (Entry, string, bool) {
	for _, k := range candidates {
		if e, ok := s.Lookup(k); ok {
			return e, k, true
		}
	}
	return Entry{}, "", false
}

func variants(key string) []string {
	collapsed := strings.Join(strings.Fields(key), " ")
	noPrep := strings.ReplaceAll(collapsed, " a ", " ")
	noPrep = strings.ReplaceAll(noPrep, "_a_", "_")

	out := make([]string, 0, 2)
	if collapsed != key {
		out = append(out, collapsed)
	}
	if noPrep != collapsed {
		out = append(out, noPrep)
	}
	return out
}

func foldKey(k string) string {
	return normalize.Fold(strings.ToLower(strings.Join(strings.Fields(k), " ")))
}
