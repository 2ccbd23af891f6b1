package sessionapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-mouse/api"
	api_i "github.com/beka-birhanu/vinom-mouse/api/i"
	"github.com/beka-birhanu/vinom-mouse/api/identity"
	dmn "github.com/beka-birhanu/vinom-mouse/domain"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-mouse/infrastruture/token"
	"github.com/beka-birhanu/vinom-mouse/maze"
	"github.com/beka-birhanu/vinom-mouse/robot"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	handler http.Handler
	session *dmn.Session
	bearer  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := repo.NewMemorySessionRepo()
	board := sortedstorage.NewMemoryScoreboard()

	session, err := dmn.NewSession(dmn.SessionConfig{Algorithm: "dfs", Dim: 4, Seed: 9})
	require.NoError(t, err)
	session.Runs = []dmn.RunResult{{Run: 0, Ticks: 3, Moves: 2, Reached: true}, {Run: 1, Ticks: 3, Moves: 2, Reached: true}}
	session.Route = []maze.Cell{{X: 0, Y: 1}, {X: 1, Y: 1}}
	session.Steps = []robot.Step{
		{Tick: 0, Position: maze.Start, Heading: maze.Up},
		{Tick: 1, Position: maze.Cell{X: 0, Y: 1}, Heading: maze.Up},
	}
	require.NoError(t, sessions.Save(session))
	score, _ := session.Score()
	require.NoError(t, board.Record(context.Background(), score))

	controller, err := NewSessionController(sessions, board)
	require.NoError(t, err)

	ts := token.NewJwtService("secret", "vinom-mouse")
	bearer, err := ts.Generate("viewer", map[string]any{identity.ScopeClaim: identity.ScopeJourney}, time.Minute)
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{controller},
		AuthorizationMiddleware: identity.Authorize(ts, identity.ScopeJourney),
	})
	return fixture{handler: router.Handler(), session: session, bearer: bearer}
}

func (f fixture) get(t *testing.T, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestSessionRoutes(t *testing.T) {
	f := newFixture(t)

	t.Run("List", func(t *testing.T) {
		w := f.get(t, "/api/v1/sessions", "")
		require.Equal(t, http.StatusOK, w.Code)

		var body []SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, f.session.ID, body[0].ID)
		assert.Equal(t, f.session.Route, body[0].Route)
	})

	t.Run("List with a bad limit", func(t *testing.T) {
		w := f.get(t, "/api/v1/sessions?limit=zero", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("By id", func(t *testing.T) {
		w := f.get(t, "/api/v1/sessions/"+f.session.ID.String(), "")
		require.Equal(t, http.StatusOK, w.Code)

		var body SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, f.session.Runs, body.Runs)
		assert.Equal(t, int64(9), body.Seed)
	})

	t.Run("Unknown and malformed ids", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, f.get(t, "/api/v1/sessions/"+uuid.NewString(), "").Code)
		assert.Equal(t, http.StatusBadRequest, f.get(t, "/api/v1/sessions/not-a-uuid", "").Code)
	})

	t.Run("Journey needs a token", func(t *testing.T) {
		path := "/api/v1/sessions/" + f.session.ID.String() + "/journey"
		assert.Equal(t, http.StatusUnauthorized, f.get(t, path, "").Code)

		w := f.get(t, path, f.bearer)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			ID    uuid.UUID `json:"id"`
			Steps []struct {
				Tick     int       `json:"tick"`
				Position maze.Cell `json:"position"`
			} `json:"steps"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Steps, 2)
		assert.Equal(t, maze.Cell{X: 0, Y: 1}, body.Steps[1].Position)
	})

	t.Run("Scoreboard", func(t *testing.T) {
		w := f.get(t, "/api/v1/scoreboard/4", "")
		require.Equal(t, http.StatusOK, w.Code)

		var body ScoreboardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Scores, 1)
		assert.Equal(t, 3, body.Scores[0].Ticks)

		assert.Equal(t, http.StatusBadRequest, f.get(t, "/api/v1/scoreboard/-2", "").Code)
	})
}

func TestNewSessionController(t *testing.T) {
	_, err := NewSessionController(nil, sortedstorage.NewMemoryScoreboard())
	assert.Error(t, err)
}
