package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/caseforge/caseforge/internal/generator"
)

// CSV writes events as comma-separated rows under a fixed header. The
// resource column appears only when enrichment is enabled, so the default
// layout stays case_id,timestamp,activity,result.
type CSV struct {
	w             *csv.Writer
	withResources bool
}

// NewCSV creates a CSV sink over w and writes the header row immediately.
func NewCSV(w io.Writer, withResources bool) (*CSV, error) {
	s := &CSV{w: csv.NewWriter(w), withResources: withResources}

	header := []string{"case_id", "timestamp", "activity", "result"}
	if withResources {
		header = []string{"case_id", "timestamp", "activity", "resource", "result"}
	}
	if err := s.w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return s, nil
}

func (s *CSV) Write(ev generator.Event) error {
	record := []string{ev.CaseID, ev.Timestamp.Format(time.RFC3339), ev.Activity, ev.Result}
	if s.withResources {
		record = []string{ev.CaseID, ev.Timestamp.Format(time.RFC3339), ev.Activity, ev.Resource, ev.Result}
	}
	if err := s.w.Write(record); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// Close flushes buffered rows and reports any deferred write error.
func (s *CSV) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
