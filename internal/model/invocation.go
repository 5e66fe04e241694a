package model

import "time"

// Invocation status constants.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusAborted   = "aborted"
)

// Resolution provenance constants: how the script for an invocation was chosen.
const (
	SourceDefault = "default"
	SourceRoute   = "route"
)

// validTransitions maps each status to the set of statuses it may transition to.
var validTransitions = map[string]map[string]bool{
	StatusRunning: {
		StatusCompleted: true,
		StatusFailed:    true,
		StatusAborted:   true,
	},
}

// ValidTransition reports whether transitioning from one status to another is allowed.
func ValidTransition(from, to string) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// Invocation is the persisted record of a single request handled by the engine.
type Invocation struct {
	ID         string     `json:"id"`
	ScriptPath string     `json:"script_path"`
	Source     string     `json:"source"`
	Method     string     `json:"method"`
	Status     string     `json:"status"`
	StatusCode *int       `json:"status_code,omitempty"`
	Error      string     `json:"error,omitempty"`
	DurationMS *int       `json:"duration_ms,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
