package fixtures

import (
	"math/rand"

	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// Tiger actions.
const (
	TigerListen = iota
	TigerOpenLeft
	TigerOpenRight
)

// Tiger states: which door the tiger is behind.
const (
	TigerLeft = iota
	TigerRight
)

// Tiger observations: which door the listen action reports hearing the
// tiger behind.
const (
	TigerHearLeft = iota
	TigerHearRight
)

// listenAccuracy is the probability a listen action reports the true state
// (spec §8 scenario 3).
const listenAccuracy = 0.85

// Tiger is the classic Tiger POMDP (spec §8 scenario 3): listening costs -1
// and leaves the state unchanged; opening the correct door (no tiger behind
// it) earns +10 and ends the episode, opening the wrong door costs -100 and
// ends the episode.
type Tiger struct{}

func (Tiger) Step(rng *rand.Rand, state, action int) pomdp.StepResult {
	switch action {
	case TigerListen:
		obs := state
		if rng.Float64() >= listenAccuracy {
			obs = 1 - state
		}
		return pomdp.StepResult{NextState: state, Observation: obs, Reward: -1.0, Done: false}
	case TigerOpenLeft:
		reward := 10.0
		if state == TigerLeft {
			reward = -100.0
		}
		return pomdp.StepResult{NextState: state, Observation: TigerHearLeft, Reward: reward, Done: true}
	case TigerOpenRight:
		reward := 10.0
		if state == TigerRight {
			reward = -100.0
		}
		return pomdp.StepResult{NextState: state, Observation: TigerHearLeft, Reward: reward, Done: true}
	default:
		panic("tiger: invalid action")
	}
}

func (Tiger) SampleStart(rng *rand.Rand) int {
	if rng.Float64() < 0.5 {
		return TigerLeft
	}
	return TigerRight
}
func (Tiger) IsTerminal(state int) bool { return false }
func (Tiger) NumActions() int           { return 3 }
func (Tiger) NumObservations() int      { return 2 }
func (Tiger) Discount() float64         { return 0.95 }
