package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/okian/carta/internal/domain/keys"
	"github.com/okian/carta/internal/domain/match"
	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/pkg/logger"
	"github.com/okian/carta/pkg/metrics"
)

// Paths locates the knowledge base files.
type Paths struct {
	DataDir        string
	Natal          string
	Transit        string
	Draconic       string
	TropicalTitles string
	DraconicTitles string
}

// KnowledgeBase groups the three stores and the per chart type target
// titles. It is built once at startup and never mutated.
type KnowledgeBase struct {
	Natal    *Store
	Transit  *Store
	Draconic *Store

	TropicalTitles *match.TitleSet
	DraconicTitles *match.TitleSet
}

// Store returns the store for base.
func (kb *KnowledgeBase) Store(base keys.Base) *Store {
	switch base {
	case keys.Transit:
		return kb.Transit
	case keys.Draconic:
		return kb.Draconic
	default:
		return kb.Natal
	}
}

// Titles returns the target titles licensing reports of chart type ct.
func (kb *KnowledgeBase) Titles(ct model.ChartType) *match.TitleSet {
	if ct == model.Draconic {
		return kb.DraconicTitles
	}
	return kb.TropicalTitles
}

// Resolve looks candidates up in base and returns the formatted text of the
// first hit and the key that resolved.
func (kb *KnowledgeBase) Resolve(base keys.Base, candidates []string, vars map[string]string) (string, string, bool) {
	e, key, ok := kb.Store(base).LookupFirst(candidates)
	if !ok {
		return "", "", false
	}
	return e.Format(vars), key, true
}

// License reports which matching step licenses query for chart type ct.
func (kb *KnowledgeBase) License(ct model.ChartType, query string) match.Step {
	return kb.Titles(ct).Explain(query)
}

// Sizes reports entry and title counts, keyed by name.
func (kb *KnowledgeBase) Sizes() map[string]int {
	return map[string]int{
		"natal":           kb.Natal.Len(),
		"transit":         kb.Transit.Len(),
		"draconic":        kb.Draconic.Len(),
		"tropical_titles": kb.TropicalTitles.Len(),
		"draconic_titles": kb.DraconicTitles.Len(),
	}
}

// Load reads every knowledge base file. Missing or malformed files are
// logged and leave their part empty; only a missing data directory fails.
// Draconic reports fall back to the tropical titles when their own list is
// missing or empty.
func Load(ctx context.Context, p Paths, log logger.Logger) (*KnowledgeBase, error) {
	if log == nil {
		log = logger.Get().Named("repository")
	}
	if p.DataDir != "" {
		info, err := os.Stat(p.DataDir)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrDataDir, p.DataDir)
		}
	}

	kb := &KnowledgeBase{}
	load := func(name, path string) *Store {
		s, err := LoadJSON(ctx, path, WithName(name), WithLogger(log))
		if err != nil {
			log.Warn(ctx, "knowledge base unavailable, continuing empty",
				logger.String("name", name), logger.Error(err))
		}
		return s
	}
	kb.Natal = load(string(keys.Natal), p.Natal)
	kb.Transit = load(string(keys.Transit), p.Transit)
	kb.Draconic = load(string(keys.Draconic), p.Draconic)

	tropical, err := LoadTitles(p.TropicalTitles)
	if err != nil {
		log.Warn(ctx, "tropical titles unavailable, nothing will be licensed", logger.Error(err))
	}
	draconic, err := LoadTitles(p.DraconicTitles)
	if err != nil || len(draconic) == 0 {
		log.Warn(ctx, "draconic titles unavailable, using tropical titles",
			logger.String("path", p.DraconicTitles))
		draconic = tropical
	}
	kb.TropicalTitles = match.NewTitleSet(tropical)
	kb.DraconicTitles = match.NewTitleSet(draconic)
	metrics.UpdateTargetTitles(string(model.Tropical), kb.TropicalTitles.Len())
	metrics.UpdateTargetTitles(string(model.Draconic), kb.DraconicTitles.Len())

	log.Info(ctx, "target titles loaded",
		logger.Int("tropical", kb.TropicalTitles.Len()),
		logger.Int("draconic", kb.DraconicTitles.Len()))
	return kb, nil
}

// LoadTitles reads one title per line, trimmed, skipping blank lines.
func LoadTitles(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceMissing, path, err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceMalformed, path, err)
	}
	return out, nil
}
