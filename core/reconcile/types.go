package reconcile

import (
	"context"
	"errors"
)

// ErrUnknownJob is returned by the Runner for a job name that was never registered.
var ErrUnknownJob = errors.New("unknown reconcile job")

// Job is a type-erased reconciliation between one source and one target.
type Job interface {
	// Name returns the job name.
	Name() string

	// Plan computes the differences without changing the target.
	Plan(ctx context.Context, opts Options) (*Plan, error)

	// Apply streams the differences into the target. It does nothing unless
	// opts.Confirmed is set and opts.DryRun is not.
	Apply(ctx context.Context, opts Options) (*Plan, error)
}

// Mode names how a run treats the target.
type Mode string

const (
	// ModePlan only reports differences.
	ModePlan Mode = "plan"
	// ModeApply writes differences to the target.
	ModeApply Mode = "apply"
)

// ActionType represents the type of a target mutation.
type ActionType string

const (
	// ActionAdd creates an element that only the source has.
	ActionAdd ActionType = "add"
	// ActionRemove deletes an element that only the target has.
	ActionRemove ActionType = "remove"
)

// Action represents a planned or applied mutation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the comparison key of the element.
	Key string `json:"key"`

	// Item is the adapter's description of the element.
	Item string `json:"item"`
}

// Plan contains the outcome of one run.
type Plan struct {
	// RunID identifies the run in logs. Set by the Runner.
	RunID string `json:"run_id,omitempty"`

	// Job is the job name.
	Job string `json:"job"`

	// Mode is plan or apply.
	Mode Mode `json:"mode"`

	// Applied is true when the target was actually changed.
	Applied bool `json:"applied"`

	// Actions lists the mutations, in emission order, up to Options.SampleLimit.
	Actions []Action `json:"actions"`

	// Truncated is true when more actions happened than were recorded.
	Truncated bool `json:"truncated"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a run.
type PlanSummary struct {
	// Added counts add actions.
	Added int `json:"added"`

	// Removed counts remove actions.
	Removed int `json:"removed"`

	// Matched counts element pairs present in both sequences.
	Matched int `json:"matched"`
}

// Total returns the number of mutations.
func (s PlanSummary) Total() int {
	return s.Added + s.Removed
}

// Options controls reconcile behavior.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the caller accepted destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool

	// SampleLimit caps the number of actions recorded in the plan.
	// Zero records all of them.
	SampleLimit int
}

// Mutates reports whether opts allow changing the target.
func (o Options) Mutates() bool {
	return o.Confirmed && !o.DryRun
}
