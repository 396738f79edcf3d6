package generator

import (
	"math/rand"
	"time"
)

// Budget tracks how many injections of each kind remain across the whole
// run. It is shared by all cases of a run; once a counter reaches zero the
// corresponding injector stays inert.
type Budget struct {
	SelfLoops int
	PingPongs int
	Gaps      int
	Errors    int
}

func newBudget(cfg Config) *Budget {
	return &Budget{
		SelfLoops: cfg.SelfLoops,
		PingPongs: cfg.PingPongs,
		Gaps:      cfg.Gaps,
		Errors:    cfg.Errors,
	}
}

// buildCase generates one case: a "process start" event, 2 to MaxEvents-1
// stage events at 5-15 minute intervals, at most one injection of each
// anomaly kind, and finally a terminal "end" event unless the incompletion
// draw truncates the case.
//
// Each injector fires only while its budget counter is positive and then
// only on an independent 50% draw, so quotas are upper bounds rather than
// targets. The injection order is fixed: later injectors index into the
// sequence already modified by earlier ones.
func buildCase(rng *rand.Rand, caseID string, start time.Time, cfg Config, budget *Budget) []Event {
	numEvents := rng.Intn(cfg.MaxEvents-3+1) + 3
	current := start

	events := make([]Event, 0, numEvents+1)
	events = append(events, Event{CaseID: caseID, Timestamp: current, Activity: ActivityStart, Result: ResultSuccess})

	for j := 1; j < numEvents; j++ {
		current = current.Add(minutesBetween(rng, 5, 15))
		events = append(events, Event{
			CaseID:    caseID,
			Timestamp: current,
			Activity:  stageActivities[rng.Intn(len(stageActivities))],
			Result:    ResultSuccess,
		})
	}

	if budget.SelfLoops > 0 && rng.Float64() < 0.5 {
		events = injectSelfLoop(rng, events)
		budget.SelfLoops--
	}
	if budget.PingPongs > 0 && rng.Float64() < 0.5 {
		events = injectPingPong(rng, events)
		budget.PingPongs--
	}
	if budget.Gaps > 0 && rng.Float64() < 0.5 {
		events = injectGap(rng, events)
		budget.Gaps--
	}
	if budget.Errors > 0 && rng.Float64() < 0.5 {
		events = injectError(rng, events)
		budget.Errors--
	}

	// The terminal event continues from the baseline clock, not from any
	// timestamp an injector may have rewritten.
	if rng.Float64() > cfg.IncompleteRate {
		current = current.Add(minutesBetween(rng, 5, 15))
		events = append(events, Event{CaseID: caseID, Timestamp: current, Activity: ActivityEnd, Result: ResultSuccess})
	}

	return events
}
