package sink

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseforge/caseforge/internal/generator"
)

func sampleEvent() generator.Event {
	return generator.Event{
		CaseID:    "case_1",
		Timestamp: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Activity:  "stage B",
		Result:    generator.ResultSuccess,
	}
}

func TestCSV_HeaderAndRows(t *testing.T) {
	var buf strings.Builder
	s, err := NewCSV(&buf, false)
	require.NoError(t, err)

	require.NoError(t, s.Write(sampleEvent()))
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "case_id,timestamp,activity,result", lines[0])
	assert.Equal(t, "case_1,2025-03-01T09:30:00Z,stage B,success", lines[1])
}

func TestCSV_WithResourceColumn(t *testing.T) {
	var buf strings.Builder
	s, err := NewCSV(&buf, true)
	require.NoError(t, err)

	ev := sampleEvent()
	ev.Resource = "mbrown"
	require.NoError(t, s.Write(ev))
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "case_id,timestamp,activity,resource,result", lines[0])
	assert.Equal(t, "case_1,2025-03-01T09:30:00Z,stage B,mbrown,success", lines[1])
}

func TestCSV_TimestampIsRFC3339(t *testing.T) {
	var buf strings.Builder
	s, err := NewCSV(&buf, false)
	require.NoError(t, err)
	require.NoError(t, s.Write(sampleEvent()))
	require.NoError(t, s.Close())

	fields := strings.Split(strings.Split(strings.TrimSpace(buf.String()), "\n")[1], ",")
	_, err = time.Parse(time.RFC3339, fields[1])
	assert.NoError(t, err)
}
