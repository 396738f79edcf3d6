package generator

import "time"

// Result values an event can carry.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Activity labels fixed by the case builder. Intermediate events draw from
// stageActivities.
const (
	ActivityStart = "process start"
	ActivityEnd   = "end"
)

var stageActivities = [...]string{"stage A", "stage B", "stage C", "stage D", "stage E"}

// Event is one timestamped activity occurrence within a case. Events are
// plain values: injectors never modify a shared element, they splice
// modified copies into a fresh slice.
type Event struct {
	CaseID    string    `json:"case_id"`
	Timestamp time.Time `json:"timestamp"`
	Activity  string    `json:"activity"`
	Resource  string    `json:"resource,omitempty"`
	Result    string    `json:"result"`
}
