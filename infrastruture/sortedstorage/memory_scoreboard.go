package sortedstorage

import (
	"cmp"
	"context"
	"slices"
	"sync"

	dmn "github.com/beka-birhanu/vinom-mouse/domain"
)

// MemoryScoreboard is the in-process Scoreboard used when no Redis is configured.
type MemoryScoreboard struct {
	boards map[int]map[string]dmn.Score
	sync.Mutex
}

// NewMemoryScoreboard creates an empty MemoryScoreboard.
func NewMemoryScoreboard() *MemoryScoreboard {
	return &MemoryScoreboard{boards: make(map[int]map[string]dmn.Score)}
}

// Record keeps score when it beats the current best of its algorithm.
func (m *MemoryScoreboard) Record(_ context.Context, score dmn.Score) error {
	m.Lock()
	defer m.Unlock()

	board, ok := m.boards[score.Dim]
	if !ok {
		board = make(map[string]dmn.Score)
		m.boards[score.Dim] = board
	}
	if best, ok := board[score.Algorithm]; ok && best.Ticks <= score.Ticks {
		return nil
	}
	board[score.Algorithm] = score
	return nil
}

// Top returns up to n entries for dim, fastest first. Ties go alphabetically.
func (m *MemoryScoreboard) Top(_ context.Context, dim int, n int64) ([]dmn.Score, error) {
	m.Lock()
	defer m.Unlock()

	scores := make([]dmn.Score, 0, len(m.boards[dim]))
	for _, s := range m.boards[dim] {
		scores = append(scores, s)
	}
	slices.SortFunc(scores, func(a, b dmn.Score) int {
		if c := cmp.Compare(a.Ticks, b.Ticks); c != 0 {
			return c
		}
		return cmp.Compare(a.Algorithm, b.Algorithm)
	})

	if int64(len(scores)) > n {
		scores = scores[:n]
	}
	return scores, nil
}
