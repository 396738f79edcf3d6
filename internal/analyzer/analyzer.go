// Package analyzer reads an event log back and reports the case statistics
// and inefficiency patterns found in it, so generated fixtures can be
// verified by round-trip.
package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/caseforge/caseforge/internal/generator"
)

// Detector names as they appear in reports.
const (
	DetectSelfLoop     = "self-loop"
	DetectReturn       = "return to previous stage"
	DetectBackwardStep = "backward step"
	DetectLongGap      = "long gap"
	DetectError        = "error outcome"
	DetectIncomplete   = "incomplete case"
)

// Analyzer computes log statistics and inefficiency findings.
type Analyzer struct {
	// Top bounds the most-frequent-activities list. Zero means 5.
	Top int
	// GapThreshold flags inter-event gaps of at least this duration.
	// Zero selects the IQR outlier rule (gap > Q3 + 1.5*IQR).
	GapThreshold time.Duration
}

// Report summarizes an event log and the inefficiencies detected in it.
type Report struct {
	ReportID          string          `json:"report_id"`
	TotalCases        int             `json:"total_cases"`
	TotalEvents       int             `json:"total_events"`
	AvgCaseSeconds    float64         `json:"average_case_duration_seconds"`
	MedianCaseSeconds float64         `json:"median_case_duration_seconds"`
	TopActivities     []ActivityCount `json:"top_activities"`
	Detections        []Detection     `json:"detections"`
}

// ActivityCount holds the frequency of one activity label.
type ActivityCount struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}

// Detection aggregates the findings of one detector.
type Detection struct {
	Name     string    `json:"name"`
	Count    int       `json:"count"`
	Findings []Finding `json:"findings,omitempty"`
}

// Finding is one concrete occurrence of a detected pattern.
type Finding struct {
	CaseID string `json:"case_id"`
	Detail string `json:"detail"`
}

// Analyze computes a report over the given cases.
func (a *Analyzer) Analyze(cases []Case) *Report {
	report := &Report{ReportID: uuid.NewString(), TotalCases: len(cases)}

	var durations []float64
	activityCounts := make(map[string]int)
	for _, c := range cases {
		report.TotalEvents += len(c.Events)
		for _, ev := range c.Events {
			activityCounts[ev.Activity]++
		}
		if len(c.Events) >= 2 {
			first := c.Events[0].Timestamp
			last := c.Events[len(c.Events)-1].Timestamp
			durations = append(durations, last.Sub(first).Seconds())
		}
	}
	report.AvgCaseSeconds = mean(durations)
	report.MedianCaseSeconds = median(durations)
	report.TopActivities = topActivities(activityCounts, a.topN())

	report.Detections = []Detection{
		detect(DetectSelfLoop, cases, findSelfLoops),
		detect(DetectReturn, cases, findReturns),
		detect(DetectBackwardStep, cases, findBackwardSteps),
		a.detectLongGaps(cases),
		detect(DetectError, cases, findErrors),
		detect(DetectIncomplete, cases, findIncomplete),
	}

	return report
}

func (a *Analyzer) topN() int {
	if a.Top > 0 {
		return a.Top
	}
	return 5
}

func detect(name string, cases []Case, find func(Case) []Finding) Detection {
	d := Detection{Name: name}
	for _, c := range cases {
		d.Findings = append(d.Findings, find(c)...)
	}
	d.Count = len(d.Findings)
	return d
}

// findSelfLoops reports immediate repetitions of one activity (A -> A).
func findSelfLoops(c Case) []Finding {
	var out []Finding
	for i := 1; i < len(c.Events); i++ {
		if c.Events[i].Activity == c.Events[i-1].Activity {
			out = append(out, Finding{
				CaseID: c.ID,
				Detail: fmt.Sprintf("%q repeated at position %d", c.Events[i].Activity, i),
			})
		}
	}
	return out
}

// findReturns reports returns to the stage before last (A -> B -> A).
func findReturns(c Case) []Finding {
	var out []Finding
	for i := 2; i < len(c.Events); i++ {
		if c.Events[i].Activity == c.Events[i-2].Activity &&
			c.Events[i].Activity != c.Events[i-1].Activity {
			out = append(out, Finding{
				CaseID: c.ID,
				Detail: fmt.Sprintf("returned to %q after %q", c.Events[i].Activity, c.Events[i-1].Activity),
			})
		}
	}
	return out
}

// findBackwardSteps reports events recorded earlier than their predecessor,
// the trail left when a mid-sequence timestamp was inflated past the events
// that follow it.
func findBackwardSteps(c Case) []Finding {
	var out []Finding
	for i := 1; i < len(c.Events); i++ {
		if c.Events[i].Timestamp.Before(c.Events[i-1].Timestamp) {
			out = append(out, Finding{
				CaseID: c.ID,
				Detail: fmt.Sprintf("%q at position %d predates %q", c.Events[i].Activity, i, c.Events[i-1].Activity),
			})
		}
	}
	return out
}

func findErrors(c Case) []Finding {
	var out []Finding
	for i, ev := range c.Events {
		if ev.Result == generator.ResultError {
			out = append(out, Finding{
				CaseID: c.ID,
				Detail: fmt.Sprintf("%q at position %d ended in error", ev.Activity, i),
			})
		}
	}
	return out
}

func findIncomplete(c Case) []Finding {
	if len(c.Events) == 0 {
		return nil
	}
	if last := c.Events[len(c.Events)-1]; last.Activity != generator.ActivityEnd {
		return []Finding{{
			CaseID: c.ID,
			Detail: fmt.Sprintf("case stops at %q without a terminal event", last.Activity),
		}}
	}
	return nil
}

// detectLongGaps flags abnormally long waits between consecutive events.
// With no explicit threshold, a gap is an outlier when it exceeds
// Q3 + 1.5*IQR over all positive gaps in the log.
func (a *Analyzer) detectLongGaps(cases []Case) Detection {
	var gaps []float64
	for _, c := range cases {
		for i := 1; i < len(c.Events); i++ {
			if g := c.Events[i].Timestamp.Sub(c.Events[i-1].Timestamp).Seconds(); g > 0 {
				gaps = append(gaps, g)
			}
		}
	}

	threshold := a.GapThreshold.Seconds()
	if a.GapThreshold == 0 {
		q1 := quantile(gaps, 0.25)
		q3 := quantile(gaps, 0.75)
		threshold = q3 + 1.5*(q3-q1)
	}

	d := Detection{Name: DetectLongGap}
	if len(gaps) == 0 {
		return d
	}
	for _, c := range cases {
		for i := 1; i < len(c.Events); i++ {
			g := c.Events[i].Timestamp.Sub(c.Events[i-1].Timestamp)
			if g.Seconds() > threshold {
				d.Findings = append(d.Findings, Finding{
					CaseID: c.ID,
					Detail: fmt.Sprintf("%v wait before %q at position %d", g, c.Events[i].Activity, i),
				})
			}
		}
	}
	d.Count = len(d.Findings)
	return d
}

func topActivities(counts map[string]int, n int) []ActivityCount {
	out := make([]ActivityCount, 0, len(counts))
	for activity, count := range counts {
		out = append(out, ActivityCount{Activity: activity, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Activity < out[j].Activity
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	return quantile(values, 0.5)
}

// quantile returns the q-th quantile of values by linear interpolation.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo == len(sorted)-1 {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
