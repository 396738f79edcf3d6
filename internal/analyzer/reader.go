package analyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caseforge/caseforge/internal/generator"
)

// Case groups the events sharing one case id, in file order.
type Case struct {
	ID     string
	Events []generator.Event
}

// timeLayouts are tried in order when parsing the timestamp column, so logs
// from other tools load without reformatting.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}

// ReadLog parses a CSV event log carrying at least the
// case_id,timestamp,activity,result columns (a resource column is accepted
// and carried through) and groups rows into cases in first-seen order,
// preserving row order within each case.
func ReadLog(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	cases, err := readLog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

func readLog(r io.Reader) ([]Case, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"case_id", "timestamp", "activity", "result"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	index := make(map[string]int) // case id -> position in cases
	var cases []Case
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		line++

		ts, err := parseTime(record[col["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		ev := generator.Event{
			CaseID:    record[col["case_id"]],
			Timestamp: ts,
			Activity:  record[col["activity"]],
			Result:    record[col["result"]],
		}
		if i, ok := col["resource"]; ok {
			ev.Resource = record[i]
		}

		pos, ok := index[ev.CaseID]
		if !ok {
			pos = len(cases)
			index[ev.CaseID] = pos
			cases = append(cases, Case{ID: ev.CaseID})
		}
		cases[pos].Events = append(cases[pos].Events, ev)
	}

	return cases, nil
}
