package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mouse/maze"
	"github.com/beka-birhanu/vinom-mouse/robot"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// RunResult summarises one timed run of a session.
type RunResult struct {
	Run     int  `bson:"run" json:"run"`
	Ticks   int  `bson:"ticks" json:"ticks"`     // Ticks handled, the RESET tick included
	Moves   int  `bson:"moves" json:"moves"`     // Commands that moved the robot
	Reached bool `bson:"reached" json:"reached"` // False when the tick budget ran out mid-run
}

// Session is the persisted record of one robot driven through one maze.
type Session struct {
	ID        uuid.UUID    `bson:"_id" json:"id"`
	Algorithm string       `bson:"algorithm" json:"algorithm"`
	Heuristic string       `bson:"heuristic,omitempty" json:"heuristic,omitempty"`
	Dim       int          `bson:"dim" json:"dim"`
	Seed      int64        `bson:"seed" json:"seed"`
	Runs      []RunResult  `bson:"runs" json:"runs"`
	Route     []maze.Cell  `bson:"route" json:"route"`
	Steps     []robot.Step `bson:"steps,omitempty" json:"-"`
	CreatedAt time.Time    `bson:"createdAt" json:"created_at"`
}

// SessionConfig holds the parameters a session is created from.
type SessionConfig struct {
	Algorithm string
	Heuristic string
	Dim       int
	Seed      int64
}

// NewSession creates an empty session with a fresh id.
func NewSession(c SessionConfig) (*Session, error) {
	if c.Dim <= 0 {
		return nil, maze.ErrInvalidDimension
	}
	if c.Algorithm == "" {
		return nil, errors.New("session needs an algorithm")
	}

	return &Session{
		ID:        uuid.New(),
		Algorithm: c.Algorithm,
		Heuristic: c.Heuristic,
		Dim:       c.Dim,
		Seed:      c.Seed,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// BestReplay returns the fastest completed run after the exploration run.
func (s *Session) BestReplay() (RunResult, bool) {
	var (
		best  RunResult
		found bool
	)
	for _, r := range s.Runs {
		if r.Run == 0 || !r.Reached {
			continue
		}
		if !found || r.Ticks < best.Ticks {
			best, found = r, true
		}
	}
	return best, found
}

// Score is a scoreboard entry: the best replay of a session.
type Score struct {
	SessionID uuid.UUID `json:"session_id"`
	Algorithm string    `json:"algorithm"`
	Dim       int       `json:"dim"`
	Ticks     int       `json:"ticks"`
}

// Score returns the scoreboard entry of the session, false when no replay
// run reached the goal.
func (s *Session) Score() (Score, bool) {
	best, ok := s.BestReplay()
	if !ok {
		return Score{}, false
	}
	return Score{SessionID: s.ID, Algorithm: s.Algorithm, Dim: s.Dim, Ticks: best.Ticks}, true
}
