// ABOUTME: RunRecord is the ledger entry describing one pipeline invocation
// ABOUTME: Tracks the state machine from idle through done or failed
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunState is a pipeline state
type RunState string

const (
	StateIdle      RunState = "idle"
	StateFetched   RunState = "fetched"
	StateAligned   RunState = "aligned"
	StateModeled   RunState = "modeled"
	StatePublished RunState = "published"
	StateDone      RunState = "done"
	StateFailed    RunState = "failed"
)

// nextState is the only forward transition allowed out of each state
var nextState = map[RunState]RunState{
	StateIdle:      StateFetched,
	StateFetched:   StateAligned,
	StateAligned:   StateModeled,
	StateModeled:   StatePublished,
	StatePublished: StateDone,
}

// Terminal reports whether no further transitions are possible
func (s RunState) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether from -> to is a legal move
func CanTransition(from, to RunState) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	return nextState[from] == to
}

// RunRecord describes one pipeline run
type RunRecord struct {
	RunID         string    `json:"run_id"`
	InputKey      string    `json:"input_key"`
	OutputKey     string    `json:"output_key"`
	Bucket        string    `json:"bucket"`
	Species       Species   `json:"species,omitempty"`
	State         RunState  `json:"state"`
	ErrorCategory string    `json:"error_category,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at,omitempty"`
}

// NewRunRecord creates an idle run for the given object locations
func NewRunRecord(inputKey, outputKey, bucket string) *RunRecord {
	return &RunRecord{
		RunID:     NewRunID(),
		InputKey:  inputKey,
		OutputKey: outputKey,
		Bucket:    bucket,
		State:     StateIdle,
		StartedAt: time.Now().UTC(),
	}
}

// NewRunID generates a unique run identifier
func NewRunID() string {
	return fmt.Sprintf("run_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}

// Advance moves the run to the next state
func (r *RunRecord) Advance(to RunState) error {
	if !CanTransition(r.State, to) {
		return fmt.Errorf("illegal run transition %s -> %s", r.State, to)
	}
	r.State = to
	if to.Terminal() {
		r.FinishedAt = time.Now().UTC()
	}
	return nil
}

// Fail marks the run failed with a category and message
func (r *RunRecord) Fail(category, message string) {
	if r.State.Terminal() {
		return
	}
	r.State = StateFailed
	r.ErrorCategory = category
	r.ErrorMessage = message
	r.FinishedAt = time.Now().UTC()
}

// Duration returns how long the run took, or zero while it is still running
func (r *RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
