// Package engine turns a chart into the ordered list of licensed
// interpretations. It is pure over the injected knowledge and safe for
// concurrent use.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/okian/carta/internal/domain/extract"
	"github.com/okian/carta/internal/domain/keys"
	"github.com/okian/carta/internal/domain/match"
	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/normalize"
	"github.com/okian/carta/internal/domain/rules"
	"github.com/okian/carta/internal/domain/types"
	"github.com/okian/carta/pkg/logger"
	"github.com/okian/carta/pkg/metrics"
)

// Knowledge resolves keys and licenses queries. The repository
// KnowledgeBase implements it.
type Knowledge interface {
	Resolve(base keys.Base, candidates []string, vars map[string]string) (text, key string, ok bool)
	License(ct model.ChartType, query string) match.Step
}

// Engine runs extraction, licensing, lookup and the complex evaluator.
type Engine struct {
	kb    Knowledge
	rules *rules.Evaluator
	log   logger.Logger
}

// New returns an engine over kb.
func New(kb Knowledge, opts ...Option) *Engine {
	e := &Engine{
		kb:    kb,
		rules: rules.Default(),
		log:   logger.Get().Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decision records how one event was handled.
type Decision struct {
	Event      model.Event
	Base       keys.Base
	Query      string
	Step       match.Step
	Suppressed bool
	Candidates []string
	Key        string
	Text       string
	Found      bool
}

// Included reports whether the event makes it into the report.
func (d Decision) Included() bool {
	if d.Suppressed {
		return false
	}
	if d.Event.Kind == model.KindComplexAspect {
		return true
	}
	return d.Step != match.None && d.Found
}

// Plan evaluates every event of chart without building output records. It is
// the debugging view of Interpret.
func (e *Engine) Plan(chart model.Chart, ct model.ChartType, vars map[string]string) []Decision {
	events := extract.Extract(chart)
	var suppressed map[string]bool
	if ct != model.Draconic {
		events = append(events, e.rules.Evaluate(chart)...)
		suppressed = make(map[string]bool)
		for _, k := range e.rules.Filters(chart) {
			suppressed[normalize.Loose(k)] = true
		}
	}

	out := make([]Decision, 0, len(events))
	for _, ev := range events {
		d := Decision{
			Event:      ev,
			Base:       keys.Target(ev, ct),
			Query:      keys.Query(ev, ct),
			Candidates: keys.Generate(ev, ct),
		}
		if ev.Kind != model.KindComplexAspect {
			d.Suppressed = isSuppressed(d, suppressed)
			if d.Query != "" {
				d.Step = e.kb.License(ct, d.Query)
			}
		}
		if !d.Suppressed && (d.Step != match.None || ev.Kind == model.KindComplexAspect) {
			d.Text, d.Key, d.Found = e.kb.Resolve(d.Base, d.Candidates, vars)
		}
		out = append(out, d)
	}
	return out
}

func isSuppressed(d Decision, suppressed map[string]bool) bool {
	if len(suppressed) == 0 {
		return false
	}
	if suppressed[normalize.Loose(d.Query)] {
		return true
	}
	for _, c := range d.Candidates {
		if suppressed[normalize.Loose(c)] {
			return true
		}
	}
	return false
}

// Interpret returns one record per licensed event with text, plus every
// complex pattern found, stable-sorted by kind priority. vars fills text
// placeholders.
func (e *Engine) Interpret(ctx context.Context, chart model.Chart, ct model.ChartType, vars map[string]string) []types.Interpretation {
	start := time.Now()
	decisions := e.Plan(chart, ct, vars)

	items := make([]types.Interpretation, 0, len(decisions))
	for _, d := range decisions {
		kind := string(d.Event.Kind)
		metrics.RecordEventExtracted(kind)
		switch {
		case d.Suppressed:
			metrics.RecordEventFiltered(kind)
			e.log.Debug(ctx, "event suppressed", logger.String("query", d.Query))
			continue
		case !d.Included():
			if d.Step == match.None {
				metrics.RecordEventUnlicensed(kind)
			}
			continue
		}
		if d.Event.Kind == model.KindComplexAspect {
			metrics.RecordComplexRule(d.Event.Rule)
		} else {
			metrics.RecordEventLicensed(kind)
		}
		items = append(items, Record(d.Event, ct, d.Text, d.Key))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return model.Kind(items[i].Kind).Priority() < model.Kind(items[j].Kind).Priority()
	})

	metrics.RecordInterpretation(string(ct), float64(time.Since(start).Microseconds())/1000)
	e.log.Debug(ctx, "chart interpreted",
		logger.String("chart_type", string(ct)),
		logger.Int("events", len(decisions)),
		logger.Int("items", len(items)))
	return items
}
