package sessionapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	dmn "github.com/beka-birhanu/vinom-mouse/domain"
	"github.com/beka-birhanu/vinom-mouse/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	scoreboardSize   = 10
)

// SessionController exposes recorded sessions read-only.
type SessionController struct {
	sessions   i.SessionRepo
	scoreboard i.Scoreboard
}

// NewSessionController initializes a SessionController.
func NewSessionController(sr i.SessionRepo, sb i.Scoreboard) (*SessionController, error) {
	if sr == nil || sb == nil {
		return nil, errors.New("session controller needs a session repo and a scoreboard")
	}
	return &SessionController{
		sessions:   sr,
		scoreboard: sb,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.GET("", sc.list)
		sessions.GET("/:ID", sc.byID)
	}
	route.GET("/scoreboard/:dim", sc.top)
}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/sessions/:ID/journey", sc.journey)
}

// list returns the most recent sessions, ?limit= bounded by maxListLimit.
func (sc *SessionController) list(ctx *gin.Context) {
	limit := defaultListLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	sessions, err := sc.sessions.Recent(limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while listing sessions"})
		return
	}

	response := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, toSessionResponse(s))
	}
	ctx.JSON(http.StatusOK, response)
}

func (sc *SessionController) byID(ctx *gin.Context) {
	session, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, toSessionResponse(session))
}

func (sc *SessionController) journey(ctx *gin.Context) {
	session, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, JourneyResponse{ID: session.ID, Steps: session.Steps})
}

func (sc *SessionController) top(ctx *gin.Context) {
	dim, err := strconv.Atoi(ctx.Params.ByName("dim"))
	if err != nil || dim <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "dim must be a positive integer"})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	scores, err := sc.scoreboard.Top(timeoutCtx, dim, scoreboardSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading the scoreboard"})
		return
	}
	ctx.JSON(http.StatusOK, ScoreboardResponse{Dim: dim, Scores: scores})
}

// lookup resolves the :ID parameter, writing the error response itself.
func (sc *SessionController) lookup(ctx *gin.Context) (*dmn.Session, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}

	session, err := sc.sessions.ByID(ID)
	if errors.Is(err, dmn.ErrSessionNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading the session"})
		return nil, false
	}
	return session, true
}
