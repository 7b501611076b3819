package gameapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	svc_i "github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
	storeTimeout     = 2 * time.Second
)

var (
	errInvalidID        = errors.New("invalid maze id")
	errInvalidBoardSize = errors.New("board size must look like 14x14")
	errNoDirection      = errors.New("direction or key_code is required")
)

// MazeController serves maze sessions, the leaderboard and game history.
type MazeController struct {
	sessions    svc_i.GameSessionManager
	leaderboard svc_i.Leaderboard
	games       svc_i.GameRepo
	logger      svc_i.Logger
	stream      *streamer
}

var _ i.Controller = &MazeController{}

// NewMazeController initializes a MazeController.
func NewMazeController(gsm svc_i.GameSessionManager, lb svc_i.Leaderboard, gr svc_i.GameRepo, logger svc_i.Logger) (*MazeController, error) {
	if gsm == nil || lb == nil || gr == nil || logger == nil {
		return nil, service.ErrMissingDependency
	}
	return &MazeController{
		sessions:    gsm,
		leaderboard: lb,
		games:       gr,
		logger:      logger,
		stream:      newStreamer(gsm, logger),
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard/:size", mc.topRuns)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.create)
		mazes.GET("/history", mc.history)
		mazes.GET("/:ID", mc.snapshot)
		mazes.POST("/:ID/impulse", mc.impulse)
		mazes.POST("/:ID/reset", mc.reset)
		mazes.GET("/:ID/hint", mc.hint)
		mazes.DELETE("/:ID", mc.end)
		mazes.GET("/:ID/stream", mc.streamSession)
	}
}

// create starts a new maze session for the caller.
func (mc *MazeController) create(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request CreateMazeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c := game.Config{
		CellsHorizontal: request.CellsHorizontal,
		CellsVertical:   request.CellsVertical,
	}
	if request.Seed != nil {
		c.Seed = *request.Seed
	}

	snap, err := mc.sessions.NewSession(owner, c, request.Seed != nil)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, snap)
}

// snapshot returns the full state of a session.
func (mc *MazeController) snapshot(ctx *gin.Context) {
	owner, id, ok := sessionParams(ctx)
	if !ok {
		return
	}
	snap, err := mc.sessions.Snapshot(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// impulse nudges the ball once.
func (mc *MazeController) impulse(ctx *gin.Context) {
	owner, id, ok := sessionParams(ctx)
	if !ok {
		return
	}

	var request ImpulseRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := request.direction()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := mc.sessions.Nudge(owner, id, dir); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// reset rebuilds the session's maze.
func (mc *MazeController) reset(ctx *gin.Context) {
	owner, id, ok := sessionParams(ctx)
	if !ok {
		return
	}
	snap, err := mc.sessions.Reset(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// hint returns the path from the ball to the goal.
func (mc *MazeController) hint(ctx *gin.Context) {
	owner, id, ok := sessionParams(ctx)
	if !ok {
		return
	}
	path, err := mc.sessions.Hint(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &HintResponse{ID: id, Path: path})
}

// end stops a session.
func (mc *MazeController) end(ctx *gin.Context) {
	owner, id, ok := sessionParams(ctx)
	if !ok {
		return
	}
	if err := mc.sessions.End(owner, id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// streamSession upgrades to a websocket carrying frames and input.
func (mc *MazeController) streamSession(ctx *gin.Context) {
	owner, id, ok := sessionParams(ctx)
	if !ok {
		return
	}
	mc.stream.serve(ctx, owner, id)
}

// history lists the caller's finished games.
func (mc *MazeController) history(ctx *gin.Context) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	limit, err := listLimit(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	games, err := mc.games.ByPlayer(owner, limit)
	if err != nil {
		mc.logger.Error("loading game history: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}
	ctx.JSON(http.StatusOK, &HistoryResponse{Games: games})
}

// topRuns returns the fastest runs for one maze size, e.g. /leaderboard/14x14.
func (mc *MazeController) topRuns(ctx *gin.Context) {
	rows, cols, err := parseBoardSize(ctx.Param("size"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := listLimit(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	board := service.LeaderboardKey(rows, cols)
	entries, err := mc.leaderboard.Top(timeoutCtx, board, limit)
	if err != nil {
		mc.logger.Error("loading leaderboard: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load leaderboard"})
		return
	}
	ctx.JSON(http.StatusOK, &LeaderboardResponse{Board: board, Entries: entries})
}

func (r ImpulseRequest) direction() (maze.Direction, error) {
	if r.Direction != "" {
		if dir, ok := maze.ParseDirection(r.Direction); ok {
			return dir, nil
		}
	}
	if r.KeyCode != 0 {
		if dir, ok := game.ParseKeyCode(r.KeyCode); ok {
			return dir, nil
		}
	}
	return 0, errNoDirection
}

// sessionParams reads the caller and the :ID parameter, writing the error
// response itself when either is missing.
func sessionParams(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	owner, ok := identity.UserID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID.Error()})
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}

func listLimit(ctx *gin.Context) (int64, error) {
	raw := ctx.Query("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(limit, maxListLimit), nil
}

func parseBoardSize(size string) (int, int, error) {
	r, c, ok := strings.Cut(strings.ToLower(size), "x")
	if !ok {
		return 0, 0, errInvalidBoardSize
	}
	rows, err := strconv.Atoi(r)
	if err != nil || rows < 1 || rows > maze.MaxDimension {
		return 0, 0, errInvalidBoardSize
	}
	cols, err := strconv.Atoi(c)
	if err != nil || cols < 1 || cols > maze.MaxDimension {
		return 0, 0, errInvalidBoardSize
	}
	return rows, cols, nil
}

// writeError maps service errors onto status codes. Sessions owned by someone
// else are reported as missing.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrNotOwner):
		ctx.JSON(http.StatusNotFound, gin.H{"error": service.ErrSessionNotFound.Error()})
	case errors.Is(err, game.ErrInvalidDimension), errors.Is(err, game.ErrInvalidWorldSize):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
