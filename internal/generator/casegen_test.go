package generator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietConfig() Config {
	return Config{
		Output:         "test.csv",
		Format:         FormatCSV,
		Instances:      1,
		MaxEvents:      10,
		IncompleteRate: 0,
	}
}

func TestBuildCase_StartsWithProcessStart(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		events := buildCase(rng, "case_1", start, quietConfig(), &Budget{})

		require.NotEmpty(t, events)
		assert.Equal(t, ActivityStart, events[0].Activity)
		assert.Equal(t, start, events[0].Timestamp)
		assert.Equal(t, ResultSuccess, events[0].Result)
	}
}

func TestBuildCase_AppendsTerminalUnlessIncomplete(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	complete := quietConfig()
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		events := buildCase(rng, "case_1", start, complete, &Budget{})
		assert.Equal(t, ActivityEnd, events[len(events)-1].Activity)
	}

	truncated := quietConfig()
	truncated.IncompleteRate = 1
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		events := buildCase(rng, "case_1", start, truncated, &Budget{})
		assert.NotEqual(t, ActivityEnd, events[len(events)-1].Activity)
	}
}

func TestBuildCase_EventCountWithinBounds(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cfg := quietConfig()

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		events := buildCase(rng, "case_1", start, cfg, &Budget{})
		// 3 to MaxEvents base events plus the terminal.
		assert.GreaterOrEqual(t, len(events), 4)
		assert.LessOrEqual(t, len(events), cfg.MaxEvents+1)
	}
}

func TestBuildCase_MinimalCaseHasFourEvents(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cfg := quietConfig()
	cfg.MaxEvents = 3

	rng := rand.New(rand.NewSource(1))
	events := buildCase(rng, "case_1", start, cfg, &Budget{})

	require.Len(t, events, 4)
	assert.Equal(t, ActivityStart, events[0].Activity)
	assert.Equal(t, ActivityEnd, events[3].Activity)
	for i := 1; i < len(events); i++ {
		assert.True(t, events[i].Timestamp.After(events[i-1].Timestamp),
			"timestamps must strictly increase without injections")
	}
	for _, ev := range events {
		assert.Equal(t, ResultSuccess, ev.Result)
	}
}

func TestBuildCase_StageIntervalsWithinBounds(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(17))

	events := buildCase(rng, "case_1", start, quietConfig(), &Budget{})
	for i := 1; i < len(events); i++ {
		gap := events[i].Timestamp.Sub(events[i-1].Timestamp)
		assert.GreaterOrEqual(t, gap, 5*time.Minute)
		assert.LessOrEqual(t, gap, 15*time.Minute)
	}
}

func TestBuildCase_SharedBudgetIsUpperBound(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cfg := quietConfig()
	cfg.SelfLoops = 2
	cfg.PingPongs = 2
	cfg.Gaps = 2
	cfg.Errors = 2

	rng := rand.New(rand.NewSource(99))
	budget := newBudget(cfg)
	for i := 0; i < 50; i++ {
		buildCase(rng, "case_1", start, cfg, budget)
	}

	// Budgets are shared across cases and only ever decremented.
	assert.GreaterOrEqual(t, budget.SelfLoops, 0)
	assert.GreaterOrEqual(t, budget.PingPongs, 0)
	assert.GreaterOrEqual(t, budget.Gaps, 0)
	assert.GreaterOrEqual(t, budget.Errors, 0)

	// With 50 cases and a 50% gate each, every quota is consumed.
	assert.Equal(t, &Budget{}, budget)
}

func TestBuildCase_ZeroBudgetInjectsNothing(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cfg := quietConfig()

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		events := buildCase(rng, "case_1", start, cfg, &Budget{})
		for _, ev := range events {
			assert.Equal(t, ResultSuccess, ev.Result)
		}
		for i := 1; i < len(events); i++ {
			assert.True(t, events[i].Timestamp.After(events[i-1].Timestamp))
		}
	}
}
