// Package sink serializes generated events to delimited text files.
package sink

import (
	"fmt"
	"os"

	"github.com/caseforge/caseforge/internal/generator"
)

// Sink persists events and must be closed to flush buffered output. A Close
// error means the file cannot be trusted.
type Sink interface {
	generator.Sink
	Close() error
}

// Open creates path and returns a sink writing the given format to it.
// The file is created up front so the generation loop never starts against
// an unwritable target.
func Open(path, format string, withResources bool) (Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	var inner Sink
	switch format {
	case generator.FormatCSV:
		inner, err = NewCSV(f, withResources)
	case generator.FormatJSONL:
		inner = NewJSONL(f)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		f.Close()
		return nil, err
	}

	return &fileSink{Sink: inner, f: f}, nil
}

// fileSink couples a sink with the file backing it so Close releases both.
type fileSink struct {
	Sink
	f *os.File
}

func (s *fileSink) Close() error {
	flushErr := s.Sink.Close()
	closeErr := s.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
