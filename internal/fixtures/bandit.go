package fixtures

import (
	"math/rand"

	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

// TwoArmBandit is spec §8 scenario 2: one state, two actions, deterministic
// rewards {1, 2}, never terminal.
type TwoArmBandit struct{}

func (TwoArmBandit) Step(rng *rand.Rand, state, action int) pomdp.StepResult {
	reward := 1.0
	if action == 1 {
		reward = 2.0
	}
	return pomdp.StepResult{NextState: state, Observation: 0, Reward: reward, Done: false}
}
func (TwoArmBandit) SampleStart(rng *rand.Rand) int { return 0 }
func (TwoArmBandit) IsTerminal(state int) bool      { return false }
func (TwoArmBandit) NumActions() int                { return 2 }
func (TwoArmBandit) NumObservations() int           { return 1 }
func (TwoArmBandit) Discount() float64              { return 0.95 }
