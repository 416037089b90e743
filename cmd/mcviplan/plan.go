package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aschutz-mcvi/mcviplanner/bound"
	"github.com/aschutz-mcvi/mcviplanner/internal/fixtures"
	"github.com/aschutz-mcvi/mcviplanner/pomdp"
	"github.com/aschutz-mcvi/mcviplanner/planner"
)

var (
	planProblem    string
	planConfigPath string
	planSeed       int64
	planGraphviz   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the planner against a bundled simulator and report the policy",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planProblem, "problem", "tiger", "bundled problem: single-state, bandit, tiger")
	planCmd.Flags().StringVar(&planConfigPath, "config", "", "YAML config file (defaults to planner.DefaultConfig)")
	planCmd.Flags().Int64Var(&planSeed, "seed", 1, "RNG seed")
	planCmd.Flags().StringVar(&planGraphviz, "graphviz", "", "write the resulting FSC to this path as Graphviz")
}

func runPlan(cmd *cobra.Command, args []string) error {
	sim, initBelief, err := loadProblem(planProblem)
	if err != nil {
		return err
	}

	cfg := planner.DefaultConfig()
	if planConfigPath != "" {
		cfg, err = planner.LoadConfigFile(planConfigPath)
		if err != nil {
			return err
		}
	}

	rng := rand.New(rand.NewSource(planSeed))
	p := planner.New(sim, cfg, rng, nil)

	store, start, err := p.Plan(initBelief, bound.DefaultRLower, bound.DefaultUpperBound)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	log.Info().Int("fsc_nodes", store.NumNodes()).Int("start_node", start).Msg("planning complete")
	fmt.Printf("FSC nodes: %d\n", store.NumNodes())
	fmt.Printf("start node: %d (best_action=%d)\n", start, store.Node(start).BestAction)

	stats := planner.EvaluateWithFSC(store, start, sim, cfg.MaxDepthSim, 200, rng)
	fmt.Printf("evaluation over 200 runs: mean=%.3f min=%.3f max=%.3f variance=%.3f\n",
		stats.Mean, stats.Min, stats.Max, stats.Variance)

	if planGraphviz != "" {
		f, err := os.Create(planGraphviz)
		if err != nil {
			return fmt.Errorf("create graphviz output: %w", err)
		}
		defer f.Close()
		if err := store.WriteGraphviz(f, nil, nil); err != nil {
			return fmt.Errorf("write graphviz: %w", err)
		}
	}

	return nil
}

func loadProblem(name string) (pomdp.Simulator, map[int]float64, error) {
	switch name {
	case "single-state":
		return fixtures.SingleState{}, map[int]float64{0: 1.0}, nil
	case "bandit":
		return fixtures.TwoArmBandit{}, map[int]float64{0: 1.0}, nil
	case "tiger":
		return fixtures.Tiger{}, map[int]float64{fixtures.TigerLeft: 0.5, fixtures.TigerRight: 0.5}, nil
	default:
		return nil, nil, fmt.Errorf("unknown problem %q (want single-state, bandit, or tiger)", name)
	}
}
