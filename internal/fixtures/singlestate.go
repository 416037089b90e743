// Package fixtures provides small, deterministic pomdp.Simulator
// implementations used to exercise the planner in tests (spec §8's
// boundary scenarios).
package fixtures

import (
	"math/rand"

	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// SingleState is spec §8 scenario 1: one state, one action, reward 1,
// terminal after a single step.
type SingleState struct{}

func (SingleState) Step(rng *rand.Rand, state, action int) pomdp.StepResult {
	return pomdp.StepResult{NextState: 0, Observation: 0, Reward: 1.0, Done: true}
}
func (SingleState) SampleStart(rng *rand.Rand) int { return 0 }
func (SingleState) IsTerminal(state int) bool      { return false }
func (SingleState) NumActions() int                { return 1 }
func (SingleState) NumObservations() int           { return 1 }
func (SingleState) Discount() float64              { return 0.9 }
