package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/beka-birhanu/vinom-mouse/config"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/metrics"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mouse/service"
	"github.com/beka-birhanu/vinom-mouse/strategy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var simulateFlags struct {
	dim       int
	algorithm string
	heuristic string
	seed      int64
	mazeFile  string
	maxTicks  int
	maxRuns   int
	render    bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive one robot through a generated or loaded maze",
	Example: `  vinom-mouse simulate --algorithm dijkstra --dim 8 --seed 42 --render
  vinom-mouse simulate --algorithm floodfill --maze-file mazes/apec.yaml`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simulateFlags.dim, "dim", config.Envs.MazeDim, "side length of the generated maze")
	f.StringVar(&simulateFlags.algorithm, "algorithm", config.Envs.Algorithm, "one of "+strings.Join(strategy.Names(), ", "))
	f.StringVar(&simulateFlags.heuristic, "heuristic", config.Envs.Heuristic, "best-first heuristic: manhattan, euclidean or legacy-euclidean")
	f.Int64Var(&simulateFlags.seed, "seed", config.Envs.Seed, "maze generator seed, 0 picks one")
	f.StringVar(&simulateFlags.mazeFile, "maze-file", config.Envs.MazeFile, "layout file (.yaml or plain text) instead of a generated maze")
	f.IntVar(&simulateFlags.maxTicks, "max-ticks", config.Envs.MaxTicks, "tick budget")
	f.IntVar(&simulateFlags.maxRuns, "max-runs", config.Envs.MaxRuns, "runs to complete, exploration included")
	f.BoolVar(&simulateFlags.render, "render", false, "draw the maze and the robot's final knowledge")

	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	m, seed, err := buildMaze(simulateFlags.dim, simulateFlags.seed, simulateFlags.mazeFile)
	if err != nil {
		return err
	}

	sim, err := service.NewSimulation(&service.Config{
		Maze:      m,
		Algorithm: simulateFlags.algorithm,
		Heuristic: simulateFlags.heuristic,
		Seed:      seed,
		MaxTicks:  simulateFlags.maxTicks,
		MaxRuns:   simulateFlags.maxRuns,
		Sessions:  repo.NewMemorySessionRepo(),
		Metrics:   metrics.New(prometheus.NewRegistry()),
		Logger:    newLogger("SIMULATION", config.ColorCyan),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session, err := sim.Run(ctx)
	if err != nil && !errors.Is(err, service.ErrBudgetExhausted) {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session %s: %s on %dx%d (seed %d)\n", session.ID, session.Algorithm, session.Dim, session.Dim, session.Seed)
	for _, r := range session.Runs {
		fmt.Fprintf(out, "  %-10s ticks=%-5d moves=%-5d reached=%t\n", metrics.RunLabel(r.Run), r.Ticks, r.Moves, r.Reached)
	}
	fmt.Fprintf(out, "  victory route: %d cells\n", len(session.Route))

	if simulateFlags.render {
		fmt.Fprintf(out, "\nmaze:\n%s\nknowledge:\n%s", m, sim.Engine().Render())
	}
	return err
}

// runOnce is shared with serve, which records a warm-up session per algorithm.
func runOnce(ctx context.Context, c *service.Config) error {
	sim, err := service.NewSimulation(c)
	if err != nil {
		return err
	}
	_, err = sim.Run(ctx)
	return err
}
