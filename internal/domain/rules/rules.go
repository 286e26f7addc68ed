// Package rules evaluates the catalogue of compound astrological patterns
// that no single knowledge base key can express, and the filters that
// suppress simple keys those patterns supersede.
//
// Rules are data: a primary predicate, secondary predicates and a title
// template. Predicates bind the specific planet, house or aspect they found
// so the emitted title names the exact combination.
package rules

import (
	"strconv"
	"strings"

	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/translate"
)

// Binding holds the values predicates detected, keyed by placeholder name.
type Binding map[string]string

// Predicate tests the chart and may bind placeholders.
type Predicate func(f *Facts, b Binding) bool

// Rule is one compound pattern.
type Rule struct {
	ID        string
	Primary   Predicate
	Secondary []Predicate
	// Title is the literal title with {placeholders} for bound values.
	Title string
	// Key is the generic knowledge base key holding the pattern's text.
	Key string
}

// Filter suppresses a simple key when its condition holds.
type Filter struct {
	Key  string
	When Predicate
}

func (r Rule) eval(f *Facts) (Binding, bool) {
	b := Binding{}
	if !r.Primary(f, b) {
		return nil, false
	}
	for _, p := range r.Secondary {
		if !p(f, b) {
			return nil, false
		}
	}
	return b, true
}

func (b Binding) render(tpl string) string {
	pairs := make([]string, 0, 2*len(b))
	for k, v := range b {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// Evaluator runs a rule catalogue and a filter list.
type Evaluator struct {
	rules   []Rule
	filters []Filter
}

// New returns an evaluator over the given catalogue.
func New(rules []Rule, filters []Filter) *Evaluator {
	return &Evaluator{rules: rules, filters: filters}
}

// Default returns the evaluator over the built-in catalogue.
func Default() *Evaluator {
	return New(Catalogue, NegativeFilters)
}

// Rules returns the catalogue size.
func (e *Evaluator) Rules() int { return len(e.rules) }

// Evaluate returns one complex event per rule that holds, in catalogue order.
func (e *Evaluator) Evaluate(chart model.Chart) []model.Event {
	f := NewFacts(chart)
	var out []model.Event
	for _, r := range e.rules {
		b, ok := r.eval(f)
		if !ok {
			continue
		}
		ev := model.Event{
			Kind:  model.KindComplexAspect,
			Rule:  r.ID,
			Title: b.render(r.Title),
		}
		if r.Key != "" {
			ev.Keys = []string{b.render(r.Key)}
		}
		out = append(out, ev)
	}
	return out
}

// Filters returns the simple keys to suppress for chart.
func (e *Evaluator) Filters(chart model.Chart) []string {
	f := NewFacts(chart)
	var out []string
	for _, flt := range e.filters {
		if flt.When(f, Binding{}) {
			out = append(out, flt.Key)
		}
	}
	return out
}

// Evaluate runs the built-in catalogue.
func Evaluate(chart model.Chart) []model.Event {
	return Default().Evaluate(chart)
}

// NegativeKeys runs the built-in filters.
func NegativeKeys(chart model.Chart) []string {
	return Default().Filters(chart)
}

// Aspect kinds.
const (
	conjunction = "conjunction"
	square      = "square"
	opposition  = "opposition"
)

var (
	hardAspects = []string{conjunction, square, opposition}
	personals   = []string{"Sun", "Moon", "Mercury", "Venus", "Mars"}
	angular     = []int{1, 4, 7, 10}
)

// AspectBetween holds when p1 and p2 form one of kinds; the Spanish aspect
// name is bound to as.
func AspectBetween(p1, p2, as string, kinds ...string) Predicate {
	return func(f *Facts, b Binding) bool {
		k, ok := f.Aspect(p1, p2, kinds...)
		if ok && as != "" {
			b[as] = translate.Aspect(k)
		}
		return ok
	}
}

// InAngularHouse holds when one of points occupies house 1, 4, 7 or 10.
// The first match binds its Spanish name to planetVar and house to houseVar.
func InAngularHouse(planetVar, houseVar string, points ...string) Predicate {
	return func(f *Facts, b Binding) bool {
		for _, p := range points {
			h := f.House(p)
			for _, a := range angular {
				if h != a {
					continue
				}
				if planetVar != "" {
					b[planetVar] = translate.Planet(p)
				}
				if houseVar != "" {
					b[houseVar] = strconv.Itoa(h)
				}
				return true
			}
		}
		return false
	}
}

// AspectTo holds when one of points forms kind with one of targets. The
// matched point and target bind to planetVar and targetVar.
func AspectTo(planetVar, targetVar, kind string, points, targets []string) Predicate {
	return func(f *Facts, b Binding) bool {
		for _, p := range points {
			for _, t := range targets {
				if _, ok := f.Aspect(p, t, kind); ok {
					if planetVar != "" {
						b[planetVar] = translate.Planet(p)
					}
					if targetVar != "" {
						b[targetVar] = translate.Planet(t)
					}
					return true
				}
			}
		}
		return false
	}
}

// InHouse holds when point occupies house n.
func InHouse(point string, n int) Predicate {
	return func(f *Facts, _ Binding) bool {
		return f.House(point) == n
	}
}

// InSign holds when point is in sign.
func InSign(point, sign string) Predicate {
	return func(f *Facts, _ Binding) bool {
		return f.InSign(point, sign)
	}
}

// Not negates p. Bindings made by p are discarded.
func Not(p Predicate) Predicate {
	return func(f *Facts, _ Binding) bool {
		return !p(f, Binding{})
	}
}

// Any holds when one of ps holds; only the first match binds.
func Any(ps ...Predicate) Predicate {
	return func(f *Facts, b Binding) bool {
		for _, p := range ps {
			if p(f, b) {
				return true
			}
		}
		return false
	}
}
