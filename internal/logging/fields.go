package logging

import "log/slog"

// Common field names for consistent logging across commands.
const (
	FieldRunID  = "run_id"
	FieldCaseID = "case_id"
	FieldCases  = "cases"
	FieldEvents = "events"
	FieldOutput = "output"
	FieldInput  = "input"
	FieldError  = "error"
)

// RunID returns a slog attribute for the generation run ID.
func RunID(id string) slog.Attr {
	return slog.String(FieldRunID, id)
}

// CaseID returns a slog attribute for a case identifier.
func CaseID(id string) slog.Attr {
	return slog.String(FieldCaseID, id)
}

// Cases returns a slog attribute for a case count.
func Cases(n int) slog.Attr {
	return slog.Int(FieldCases, n)
}

// Events returns a slog attribute for an event count.
func Events(n int) slog.Attr {
	return slog.Int(FieldEvents, n)
}

// Output returns a slog attribute for the output path.
func Output(path string) slog.Attr {
	return slog.String(FieldOutput, path)
}

// Input returns a slog attribute for the input path.
func Input(path string) slog.Attr {
	return slog.String(FieldInput, path)
}

// Err returns a slog attribute for an error value.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(FieldError, err.Error())
}
