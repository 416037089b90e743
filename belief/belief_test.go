package belief

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aschutz-mcvi/mcviplanner/pomdp"
)

func TestNormalize(t *testing.T) {
	t.Run("rescales to sum to one", func(t *testing.T) {
		d := Distribution{0: 2.0, 1: 2.0}
		err := Normalize(d)
		require.NoError(t, err)
		require.InDelta(t, 1.0, d.Sum(), 1e-9)
		require.InDelta(t, 0.5, d[0], 1e-9)
	})

	t.Run("rejects empty distribution", func(t *testing.T) {
		err := Normalize(Distribution{})
		require.Error(t, err)
	})

	t.Run("rejects non-positive total mass", func(t *testing.T) {
		err := Normalize(Distribution{0: 0.0})
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepts a normalised belief", func(t *testing.T) {
		require.NoError(t, Validate(Distribution{0: 0.5, 1: 0.5}))
	})

	t.Run("rejects a belief that does not sum to one", func(t *testing.T) {
		require.Error(t, Validate(Distribution{0: 0.4, 1: 0.4}))
	})

	t.Run("rejects a zero-weight state", func(t *testing.T) {
		require.Error(t, Validate(Distribution{0: 1.0, 1: 0.0}))
	})
}

func TestSampleOne(t *testing.T) {
	t.Run("single state always wins", func(t *testing.T) {
		d := Distribution{0: 1.0}
		rng := rand.New(rand.NewSource(1))
		require.Equal(t, 0, SampleOne(d, rng))
	})

	// d's total mass is 0.02, far below 1: this mimics buildActionNode's
	// remaining map a couple of draws into a without-replacement loop. A
	// target drawn from the full [0,1) range and walked against d's raw
	// cumulative sum would almost always overshoot and fall back to the
	// highest-ID state; scaling the target to d's actual total keeps the
	// draw proportional to the two equal weights.
	t.Run("scales target to distribution's actual total mass", func(t *testing.T) {
		d := Distribution{0: 0.01, 1: 0.01}
		rng := rand.New(rand.NewSource(42))
		counts := map[pomdp.State]int{}
		const trials = 20000
		for i := 0; i < trials; i++ {
			counts[SampleOne(d, rng)]++
		}
		frac0 := float64(counts[0]) / float64(trials)
		require.InDelta(t, 0.5, frac0, 0.05, "equal weights must split roughly evenly regardless of their common scale")
	})
}

func TestDownSample(t *testing.T) {
	t.Run("returns the same belief when k covers all states", func(t *testing.T) {
		d := Distribution{0: 0.5, 1: 0.5}
		rng := rand.New(rand.NewSource(1))
		out := DownSample(d, 5, rng)
		require.Equal(t, d, out)
	})

	t.Run("keeps at most k states and stays normalised", func(t *testing.T) {
		d := Distribution{0: 0.1, 1: 0.1, 2: 0.1, 3: 0.7}
		rng := rand.New(rand.NewSource(7))
		out := DownSample(d, 2, rng)
		require.Len(t, out, 2)
		require.InDelta(t, 1.0, out.Sum(), 1e-9)
	})
}

func TestSampleInitialNormalises(t *testing.T) {
	sim := constStartSim{state: 3}
	rng := rand.New(rand.NewSource(1))
	d := SampleInitial(sim, 50, rng)
	require.InDelta(t, 1.0, d.Sum(), 1e-9)
	require.Equal(t, Distribution{3: 1.0}, d)
}

// constStartSim is a minimal pomdp.Simulator stub whose only relevant
// behaviour is SampleStart; the other methods are never exercised here.
type constStartSim struct{ state int }

func (s constStartSim) Step(rng *rand.Rand, state, action int) pomdp.StepResult {
	return pomdp.StepResult{NextState: state}
}
func (s constStartSim) SampleStart(rng *rand.Rand) int { return s.state }
func (s constStartSim) IsTerminal(state int) bool      { return false }
func (s constStartSim) NumActions() int                { return 1 }
func (s constStartSim) NumObservations() int           { return 1 }
func (s constStartSim) Discount() float64              { return 0.9 }
