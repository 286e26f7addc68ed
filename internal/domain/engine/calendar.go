package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/okian/carta/internal/domain/keys"
	"github.com/okian/carta/internal/domain/match"
	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/normalize"
	"github.com/okian/carta/internal/domain/translate"
	"github.com/okian/carta/internal/domain/types"
	"github.com/okian/carta/pkg/logger"
	"github.com/okian/carta/pkg/metrics"
)

var progressedRe = regexp.MustCompile(`(?i)conjunci[oó]n\s+([\p{L}]+)\s+natal`)

// CalendarQuery builds the candidate title for a calendar event, normalized
// as a title, and reports whether it addresses the transit base. Events of
// unknown shape fall back to their description.
func CalendarQuery(ev model.CalendarEvent) (string, keys.Base) {
	title := ev.Description
	base := keys.Natal

	switch ev.Type {
	case model.CalendarAspect:
		if ev.Planet1 == "" || ev.Planet2 == "" || ev.Aspect == "" {
			break
		}
		p1, p2, aspect := translate.PlanetQuery(ev.Planet1), translate.PlanetQuery(ev.Planet2), translate.Aspect(ev.Aspect)
		if strings.Contains(normalize.Loose(ev.Description), "por transito") {
			title = fmt.Sprintf("%s en tránsito %s a %s natal", p1, aspect, p2)
			base = keys.Transit
		} else {
			title = fmt.Sprintf("%s %s a %s", p1, aspect, p2)
		}

	case model.CalendarNewMoon, model.CalendarFullMoon:
		switch {
		case ev.NatalHouse > 0:
			title = fmt.Sprintf("%s en casa %d natal", strings.ToLower(ev.Type), ev.NatalHouse)
		case ev.Sign != "":
			title = fmt.Sprintf("%s en %s", strings.ToLower(ev.Type), translate.SignQuery(ev.Sign))
		}

	case model.CalendarSolarEclipse, model.CalendarLunarEclipse:
		switch {
		case ev.Sign != "" && ev.NatalHouse > 0:
			title = fmt.Sprintf("%s en %s en casa natal %d", strings.ToLower(ev.Type), translate.SignQuery(ev.Sign), ev.NatalHouse)
		case ev.Sign != "":
			title = fmt.Sprintf("%s en %s", strings.ToLower(ev.Type), translate.SignQuery(ev.Sign))
		}

	case model.CalendarProgressedMoon:
		if m := progressedRe.FindStringSubmatch(ev.Description); m != nil {
			title = fmt.Sprintf("luna progresada conjunción a %s natal", translate.PlanetQuery(m[1]))
		}
	}
	return normalize.Title(title), base
}

// InterpretCalendarEvent licenses the event's candidate title against the
// tropical titles and looks its text up.
func (e *Engine) InterpretCalendarEvent(ctx context.Context, ev model.CalendarEvent, vars map[string]string) types.CalendarResult {
	query, base := CalendarQuery(ev)
	res := types.CalendarResult{Description: ev.Description, Query: query}

	if e.kb.License(model.Tropical, query) != match.None {
		text, _, ok := e.kb.Resolve(base, calendarCandidates(ev, query, base), vars)
		res.Text, res.Matched = text, ok
	}
	metrics.RecordCalendarEvent(res.Matched)
	if !res.Matched {
		e.log.Debug(ctx, "calendar event unmatched",
			logger.String("type", ev.Type), logger.String("query", query))
	}
	return res
}

func calendarCandidates(ev model.CalendarEvent, query string, base keys.Base) []string {
	out := []string{base.Convention().Apply(query)}
	if ev.Type != model.CalendarAspect || ev.Planet1 == "" || ev.Planet2 == "" || ev.Aspect == "" {
		return out
	}
	aspect := model.Event{
		Kind:    model.KindAspect,
		Point:   ev.Planet1,
		Other:   ev.Planet2,
		Aspect:  ev.Aspect,
		Transit: base == keys.Transit,
	}
	for _, k := range keys.Generate(aspect, model.Tropical) {
		if k != out[0] {
			out = append(out, k)
		}
	}
	return out
}
