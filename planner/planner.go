package planner

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aschutz-mcvi/mcviplanner/backup"
	"github.com/aschutz-mcvi/mcviplanner/belief"
	"github.com/aschutz-mcvi/mcviplanner/bound"
	"github.com/aschutz-mcvi/mcviplanner/fsc"
	"github.com/aschutz-mcvi/mcviplanner/mcvierr"
	"github.com/aschutz-mcvi/mcviplanner/metrics"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
	"github.com/aschutz-mcvi/mcviplanner/tree"
)

// Planner owns one run's tree, FSC store, and collaborators (spec §4.8,
// C8). A Planner is single-use: construct with New, call Plan once.
type Planner struct {
	sim     pomdp.Simulator
	cfg     Config
	metrics metrics.Collector
	rng     *rand.Rand

	tree  *tree.Tree
	store *fsc.Store
	root  tree.NodeID
}

// New builds a Planner. collector may be nil, in which case instrumentation is
// a no-op (spec treats metrics as an ambient, not a required, concern).
func New(sim pomdp.Simulator, cfg Config, rng *rand.Rand, collector metrics.Collector) *Planner {
	if collector == nil {
		collector = metrics.NewNoopCollector()
	}
	return &Planner{sim: sim, cfg: cfg, metrics: collector, rng: rng}
}

// Plan runs spec §4.8's outer loop to convergence, an iteration cap, or a
// computation-time budget, whichever comes first. It returns the FSC store
// and the FSC index to start execution from.
func (p *Planner) Plan(b0 belief.Distribution, rLower bound.RLowerFunc, upperBound bound.UpperBoundFunc) (*fsc.Store, int, error) {
	if err := belief.Validate(b0); err != nil {
		return nil, 0, mcvierr.New(mcvierr.InvalidArgument, "initial belief invalid: %v", err)
	}

	deadline, hasDeadline := p.deadline()

	rLowerValue := rLower(p.sim, b0, p.cfg.EvalDepth, p.cfg.EvalEpsilon, p.rng)

	treeCfg := tree.Config{
		Simulator:        p.sim,
		RLower:           rLower,
		UpperBound:       upperBound,
		EvalDepth:        p.cfg.EvalDepth,
		EvalEpsilon:      p.cfg.EvalEpsilon,
		MaxBeliefSamples: p.cfg.MaxBeliefSamples,
	}
	t, root := tree.New(treeCfg, b0, p.rng)
	p.tree = t
	p.root = root

	store := fsc.NewStore(p.cfg.MaxNodeSize)
	p.store = store

	seed := store.AddNode(fsc.NewNode(pomdp.Action(p.rng.Intn(p.sim.NumActions()))))
	t.OR(root).SetFSCNodeIndex(seed)
	store.SetStart(seed)

	p.metrics.Start()

	iter := 0
	finalGap := t.OR(root).Upper() - t.OR(root).Lower()
	for ; iter < p.cfg.MaxIter; iter++ {
		if hasDeadline && time.Now().After(deadline) {
			start, _ := store.StartNode()
			return store, start, mcvierr.New(mcvierr.BudgetExceeded, "max_computation_ms exceeded after %d iterations", iter)
		}

		node := t.OR(root)
		gap := node.Upper() - node.Lower()
		finalGap = gap
		if gap < p.cfg.Epsilon {
			log.Debug().Int("iteration", iter).Float64("gap", gap).Msg("converged")
			break
		}

		traversal := p.sampleDown(root, 0, gap, rLowerValue)
		for i := len(traversal) - 1; i >= 0; i-- {
			backup.BackUp(t, traversal[i], store, p.sim.NumActions(), p.rng)
		}

		if t.OR(root).HasFSCNode() {
			store.SetStart(t.OR(root).FSCNodeIndex())
		}

		p.metrics.AddIteration(metrics.IterationMetric{
			Iteration:      iter,
			Gap:            gap,
			TraversalDepth: len(traversal),
			FSCNodes:       store.NumNodes(),
		})
		log.Debug().Int("iteration", iter).Float64("gap", gap).Int("fsc_nodes", store.NumNodes()).Msg("iteration complete")
	}

	p.metrics.Complete(finalGap, store.NumNodes())

	start, _ := store.StartNode()
	return store, start, nil
}

// RootBounds returns the belief tree's root lower and upper bounds as they
// stood when Plan last returned. Meant for tests and diagnostics that need
// to check convergence beyond just the chosen FSC start node; Plan itself
// must be called first.
func (p *Planner) RootBounds() (lower, upper float64) {
	node := p.tree.OR(p.root)
	return node.Lower(), node.Upper()
}

// sampleDown implements spec §4.8's forward traversal: at each visited node
// it backs up action bounds and runs the Monte-Carlo backup, then descends
// toward the observation that most reduces the bound gap, until it hits
// max_depth_sim or choose_observation fails to find a promising child. It
// returns the visited nodes in forward (root-first) order; the caller backs
// them up again in reverse, per spec's two-pass structure (the reverse pass
// propagates freshly minted FSC indices back up the path).
func (p *Planner) sampleDown(node tree.NodeID, depth int, target, rLower float64) []tree.NodeID {
	var out []tree.NodeID
	for depth < p.cfg.MaxDepthSim {
		p.tree.BackUpActions(node)
		backup.BackUp(p.tree, node, p.store, p.sim.NumActions(), p.rng)
		out = append(out, node)

		next, ok := p.tree.ChooseObservation(node, target)
		if !ok {
			return out
		}
		node = next
		depth++
	}
	return out
}

func (p *Planner) deadline() (time.Time, bool) {
	if p.cfg.MaxComputationMS <= 0 {
		return time.Time{}, false
	}
	return time.Now().Add(time.Duration(p.cfg.MaxComputationMS) * time.Millisecond), true
}
