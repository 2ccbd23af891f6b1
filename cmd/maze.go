package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-mouse/simulator"
)

// buildMaze loads file when given, otherwise generates a dim×dim maze. A zero
// seed is replaced by one taken from the clock; the seed used is returned.
func buildMaze(dim int, seed int64, file string) (*simulator.Maze, int64, error) {
	if file != "" {
		m, err := simulator.Load(file)
		if err != nil {
			return nil, 0, fmt.Errorf("loading maze %s: %w", file, err)
		}
		return m, 0, nil
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m, err := simulator.Generate(dim, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, 0, err
	}
	return m, seed, nil
}
