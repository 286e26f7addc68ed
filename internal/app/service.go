// Package service provides the interpretation service that implements the
// dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/carta/internal/adapters/llm"
	workerpool "github.com/okian/carta/internal/adapters/mq/worker"
	"github.com/okian/carta/internal/adapters/repository"
	"github.com/okian/carta/internal/config"
	"github.com/okian/carta/internal/domain/engine"
	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/types"
	"github.com/okian/carta/pkg/logger"
	"github.com/okian/carta/pkg/metrics"
)

// Rewrite stages, as recorded in metrics.
const (
	stageItem      = "item"
	stageNarrative = "narrative"
)

// Request is one chart interpretation request.
type Request struct {
	Chart     model.Chart
	ChartType model.ChartType
	// Gender selects the grammatical gender of the narrative: femenino or
	// masculino. Anything else adds no instruction.
	Gender string
	// Variables fill {placeholders} in knowledge base text.
	Variables map[string]string
}

// Service wires the knowledge base, the engine and the rewriter.
type Service struct {
	mu sync.RWMutex

	// Core components
	kb       *repository.KnowledgeBase
	engine   *engine.Engine
	rewriter llm.Rewriter
	pool     *workerpool.Pool

	// Configuration
	paths          repository.Paths
	workerCount    int
	rewriteTimeout time.Duration
	rewriteItems   bool

	// State
	started        bool
	startedAt      time.Time
	interpretCount atomic.Int64
	calendarCount  atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    min(runtime.NumCPU(), 10),
		rewriteTimeout: 60 * time.Second,
		rewriter:       llm.Passthrough{},
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewFromConfig builds a Service, and its rewriter, from cfg.
func NewFromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	timeout := time.Duration(cfg.RewriteTimeoutMS) * time.Millisecond
	rewriter, err := llm.New(ctx, cfg.LLMProvider, cfg.LLMModel, cfg.LLMAPIKey, llm.WithTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("create rewriter: %w", err)
	}
	base := []Option{
		WithPaths(repository.Paths{
			DataDir:        cfg.DataDir,
			Natal:          cfg.Path(cfg.NatalFile),
			Transit:        cfg.Path(cfg.TransitFile),
			Draconic:       cfg.Path(cfg.DraconicFile),
			TropicalTitles: cfg.Path(cfg.TropicalTitlesFile),
			DraconicTitles: cfg.Path(cfg.DraconicTitlesFile),
		}),
		WithRewriter(rewriter),
		WithWorkerCount(cfg.RewriteWorkers),
		WithRewriteTimeout(timeout),
		WithRewriteItems(cfg.RewriteItems),
	}
	return New(append(base, opts...)...), nil
}

// Start loads the knowledge base and initializes the components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting interpretation service...")

	if s.kb == nil {
		kb, err := repository.Load(ctx, s.paths, s.logger.Named("repository"))
		if err != nil {
			return fmt.Errorf("load knowledge base: %w", err)
		}
		s.kb = kb
	}
	s.engine = engine.New(s.kb, engine.WithLogger(s.logger.Named("engine")))
	s.pool = workerpool.NewPool(s.workerCount,
		workerpool.WithName("rewrite"),
		workerpool.WithLogger(s.logger.Named("rewrite")),
	)

	s.started = true
	s.startedAt = time.Now()
	sizes := s.kb.Sizes()
	s.logger.Info(ctx, "interpretation service started",
		logger.Int("workers", s.pool.Size()),
		logger.Bool("rewriteItems", s.rewriteItems),
		logger.Int("natal", sizes["natal"]),
		logger.Int("transit", sizes["transit"]),
		logger.Int("draconic", sizes["draconic"]),
	)
	return nil
}

// Stop marks the service stopped. The knowledge base stays loaded so a
// restart is cheap.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "interpretation service stopped")
}

func (s *Service) components() (*engine.Engine, *workerpool.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.engine, s.pool, nil
}

// Interpret runs the engine over the chart, optionally rewrites each item
// and composes the narrative. Rewrite failures keep the original text.
func (s *Service) Interpret(ctx context.Context, req Request) (types.Report, error) {
	eng, pool, err := s.components()
	if err != nil {
		return types.Report{}, err
	}
	ct := req.ChartType
	if ct == "" {
		ct = model.Tropical
	}
	if ct != model.Tropical && ct != model.Draconic {
		return types.Report{}, fmt.Errorf("%w: %s", ErrInvalidChart, ct)
	}

	start := time.Now()
	items := eng.Interpret(ctx, req.Chart, ct, req.Variables)
	if s.rewriteItems && len(items) > 0 {
		items = s.rewriteEach(ctx, pool, req.Gender, items)
	}

	report := types.Report{
		Name:      req.Chart.Name,
		ChartType: string(ct),
		Narrative: s.narrative(ctx, ct, req.Gender, items),
		Items:     items,
	}
	report.ElapsedSeconds = math.Round(time.Since(start).Seconds()*100) / 100
	s.interpretCount.Add(1)

	s.logger.Info(ctx, "chart interpreted",
		logger.String("name", req.Chart.Name),
		logger.String("chartType", string(ct)),
		logger.Int("items", len(items)),
		logger.Float64("seconds", report.ElapsedSeconds),
	)
	return report, nil
}

func (s *Service) rewriteEach(ctx context.Context, pool *workerpool.Pool, gender string, items []types.Interpretation) []types.Interpretation {
	texts, errs := workerpool.Map(ctx, pool, items, func(ctx context.Context, it types.Interpretation) (string, error) {
		if it.Text == "" {
			return "", nil
		}
		return s.rewrite(ctx, stageItem, llm.ItemPrompt(gender, it))
	})

	out := make([]types.Interpretation, len(items))
	copy(out, items)
	for i := range out {
		if errs[i] == nil && texts[i] != "" {
			out[i].Text = texts[i]
		}
	}
	return out
}

func (s *Service) narrative(ctx context.Context, ct model.ChartType, gender string, items []types.Interpretation) string {
	if len(items) == 0 {
		return ""
	}
	prompt := llm.NarrativePrompt(ct, gender, items)
	text, err := s.rewrite(ctx, stageNarrative, prompt)
	if err != nil {
		return prompt.Body
	}
	return text
}

func (s *Service) rewrite(ctx context.Context, stage string, p llm.Prompt) (string, error) {
	start := time.Now()
	text, err := s.rewriter.Rewrite(ctx, p)
	metrics.RecordRewriteLatency(stage, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordRewriteError(stage)
		s.logger.Warn(ctx, "rewrite failed, keeping original text",
			logger.String("stage", stage), logger.Error(err))
		return "", err
	}
	return text, nil
}

// InterpretEvents interprets calendar events in input order.
func (s *Service) InterpretEvents(ctx context.Context, events []model.CalendarEvent, vars map[string]string) ([]types.CalendarResult, error) {
	eng, _, err := s.components()
	if err != nil {
		return nil, err
	}
	out := make([]types.CalendarResult, 0, len(events))
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, eng.InterpretCalendarEvent(ctx, ev, vars))
	}
	s.calendarCount.Add(int64(len(events)))
	return out, nil
}

// Plan returns the per-event decisions for chart without composing a report.
func (s *Service) Plan(_ context.Context, chart model.Chart, ct model.ChartType, vars map[string]string) ([]engine.Decision, error) {
	eng, _, err := s.components()
	if err != nil {
		return nil, err
	}
	return eng.Plan(chart, ct, vars), nil
}

// KnowledgeSizes reports knowledge base entry and title counts.
func (s *Service) KnowledgeSizes() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kb == nil {
		return map[string]int{}
	}
	return s.kb.Sizes()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"rewriteItems":    s.rewriteItems,
		"interpretations": s.interpretCount.Load(),
		"calendarEvents":  s.calendarCount.Load(),
	}

	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		stats["knowledgeBase"] = s.kb.Sizes()
		metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	}

	return stats
}
