package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/caseforge/caseforge/internal/generator"
)

// JSONL writes one JSON object per line, for consumers that ingest
// newline-delimited events rather than tabular files.
type JSONL struct {
	enc *json.Encoder
}

// NewJSONL creates a JSON Lines sink over w.
func NewJSONL(w io.Writer) *JSONL {
	return &JSONL{enc: json.NewEncoder(w)}
}

func (s *JSONL) Write(ev generator.Event) error {
	if err := s.enc.Encode(ev); err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return nil
}

// Close is a no-op; the encoder writes through on every event.
func (s *JSONL) Close() error {
	return nil
}
