// Package sessionapi serves recorded simulation sessions, their journeys and
// the scoreboard.
package sessionapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-mouse/domain"
	"github.com/beka-birhanu/vinom-mouse/maze"
	"github.com/beka-birhanu/vinom-mouse/robot"
	"github.com/google/uuid"
)

// SessionResponse is a session without its journey.
type SessionResponse struct {
	ID        uuid.UUID       `json:"id"`
	Algorithm string          `json:"algorithm"`
	Heuristic string          `json:"heuristic,omitempty"`
	Dim       int             `json:"dim"`
	Seed      int64           `json:"seed"`
	Runs      []dmn.RunResult `json:"runs"`
	Route     []maze.Cell     `json:"route"`
	CreatedAt time.Time       `json:"created_at"`
}

// JourneyResponse is the tick by tick journey of a session.
type JourneyResponse struct {
	ID    uuid.UUID    `json:"id"`
	Steps []robot.Step `json:"steps"`
}

// ScoreboardResponse lists the best replay per algorithm for one dimension.
type ScoreboardResponse struct {
	Dim    int         `json:"dim"`
	Scores []dmn.Score `json:"scores"`
}

func toSessionResponse(s *dmn.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Algorithm: s.Algorithm,
		Heuristic: s.Heuristic,
		Dim:       s.Dim,
		Seed:      s.Seed,
		Runs:      s.Runs,
		Route:     s.Route,
		CreatedAt: s.CreatedAt,
	}
}
