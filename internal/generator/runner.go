package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/caseforge/caseforge/internal/logging"
)

// Sink persists generated events. Implementations must surface write
// failures so a broken run is never mistaken for success.
type Sink interface {
	Write(Event) error
}

// Summary reports what a run produced.
type Summary struct {
	RunID    string
	Cases    int
	Events   int
	Injected Budget // injections actually performed, per kind
	Output   string
}

// Runner generates a full log according to its configuration. All
// randomness flows through a single seeded source so a run is reproducible
// given the same seed.
type Runner struct {
	cfg   Config
	rng   *rand.Rand
	faker *gofakeit.Faker
	log   *logging.Logger

	// StartTime anchors the first case. Zero means the wall clock at Run.
	StartTime time.Time
}

// NewRunner creates a runner for cfg. A zero seed picks a time-based one.
func NewRunner(cfg Config, log *logging.Logger) *Runner {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := &Runner{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
		log: log,
	}
	if cfg.WithResources {
		r.faker = gofakeit.New(seed)
	}
	return r
}

// Run validates the configuration and streams every case's events to snk in
// generation order. Consecutive case start times drift forward by up to an
// hour independently of each case's internal clock, so cases may overlap.
func (r *Runner) Run(snk Sink) (*Summary, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	summary := &Summary{RunID: uuid.NewString(), Output: r.cfg.Output}
	budget := newBudget(r.cfg)

	r.log.Info("starting generation",
		logging.RunID(summary.RunID),
		logging.Output(r.cfg.Output),
		"instances", r.cfg.Instances,
		"max_events", r.cfg.MaxEvents,
		"seed", r.cfg.Seed,
	)

	start := r.StartTime
	if start.IsZero() {
		start = time.Now()
	}
	for i := 0; i < r.cfg.Instances; i++ {
		caseID := fmt.Sprintf("case_%d", i+1)
		events := buildCase(r.rng, caseID, start, r.cfg, budget)
		start = start.Add(minutesBetween(r.rng, 0, 60))

		if r.faker != nil {
			for j := range events {
				events[j].Resource = r.faker.Username()
			}
		}

		for _, ev := range events {
			if err := snk.Write(ev); err != nil {
				return nil, fmt.Errorf("write event for %s: %w", caseID, err)
			}
		}

		summary.Cases++
		summary.Events += len(events)
	}

	summary.Injected = Budget{
		SelfLoops: r.cfg.SelfLoops - budget.SelfLoops,
		PingPongs: r.cfg.PingPongs - budget.PingPongs,
		Gaps:      r.cfg.Gaps - budget.Gaps,
		Errors:    r.cfg.Errors - budget.Errors,
	}

	r.log.Info("generation complete",
		logging.RunID(summary.RunID),
		logging.Cases(summary.Cases),
		logging.Events(summary.Events),
		"self_loops", summary.Injected.SelfLoops,
		"ping_pongs", summary.Injected.PingPongs,
		"gaps", summary.Injected.Gaps,
		"errors", summary.Injected.Errors,
	)

	return summary, nil
}
