// Package pomdp defines the black-box simulator contract the planner consumes.
//
// Everything in this package is an interface boundary: the planner never
// inspects a State, Action, or Observation beyond comparing it for equality
// or using it as a map key. Concrete simulators (CTP, tiger, ...) live
// outside this module.
package pomdp

import "math/rand"

// State, Action and Observation are opaque identifiers assigned by a
// Simulator. Negative values are never produced by a well-behaved Simulator;
// the planner uses -1 as "no action yet"/"no FSC node" in a few internal
// bookkeeping spots but that is an implementation detail of this module, not
// a contract Simulator implementations need to honour.
type State = int
type Action = int
type Observation = int

// StepResult is the outcome of taking Action in State.
type StepResult struct {
	NextState   State
	Observation Observation
	Reward      float64
	Done        bool
}

// Simulator is the black-box POMDP the planner plans against. All
// randomness used inside Step is the simulator's own responsibility; the
// planner supplies it an *rand.Rand only as a convenience, not a requirement.
type Simulator interface {
	// Step draws a transition from (state, action), returning the next
	// state, the observation emitted, the instant reward, and whether the
	// resulting state is terminal.
	Step(rng *rand.Rand, state State, action Action) StepResult

	// SampleStart draws one state from the initial-belief distribution.
	SampleStart(rng *rand.Rand) State

	// IsTerminal reports whether state has no legal actions remaining.
	IsTerminal(state State) bool

	// NumActions and NumObservations bound the action/observation spaces:
	// valid actions are [0, NumActions), valid observations [0, NumObservations).
	NumActions() int
	NumObservations() int

	// Discount returns gamma in [0, 1).
	Discount() float64
}
