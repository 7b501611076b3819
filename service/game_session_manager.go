package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultTickRate     = time.Second / 60
	defaultGameDuration = 10 * time.Minute
	subscriberBuffer    = 8
	recordTimeout       = 2 * time.Second
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotOwner        = errors.New("session belongs to another player")
)

// LeaderboardKey names the leaderboard shared by every maze of rows x cols.
func LeaderboardKey(rows, cols int) string {
	return fmt.Sprintf("leaderboard:%dx%d", rows, cols)
}

type managedSession struct {
	owner       uuid.UUID
	session     *game.Session
	fixedSeed   bool
	stop        chan struct{}
	expiry      *time.Timer
	subscribers map[int]chan game.Snapshot
	nextSub     int
	closed      bool
	sync.Mutex
}

func (ms *managedSession) current() *game.Session {
	ms.Lock()
	defer ms.Unlock()
	return ms.session
}

// broadcast hands frame to every subscriber without blocking; full buffers drop it.
func (ms *managedSession) broadcast(frame game.Snapshot) {
	ms.Lock()
	defer ms.Unlock()
	for _, ch := range ms.subscribers {
		select {
		case ch <- frame:
		default:
		}
	}
}

func (ms *managedSession) closeSubscribers() {
	ms.Lock()
	defer ms.Unlock()
	ms.closed = true
	for id, ch := range ms.subscribers {
		close(ch)
		delete(ms.subscribers, id)
	}
}

// GameSessionManager owns every running maze session and ticks each one on its
// own goroutine.
type GameSessionManager struct {
	sessions    map[uuid.UUID]*managedSession
	leaderboard i.Leaderboard
	gameRepo    i.GameRepo
	userRepo    i.UserRepo
	logger      i.Logger
	tickRate    time.Duration
	sessionTTL  time.Duration
	width       float64
	height      float64
	seed        func() int64
	sync.RWMutex
}

var _ i.GameSessionManager = &GameSessionManager{}

// Config holds the dependencies and tuning of a GameSessionManager.
type Config struct {
	Leaderboard i.Leaderboard // optional
	GameRepo    i.GameRepo    // optional
	UserRepo    i.UserRepo    // optional, counts wins per user
	Logger      i.Logger
	TickRate    time.Duration // defaults to 60 Hz
	SessionTTL  time.Duration // defaults to defaultGameDuration
	Width       float64       // world width, game.DefaultWidth when zero
	Height      float64       // world height, game.DefaultHeight when zero
	Seed        func() int64  // draws seeds for sessions created without one
}

// NewGameSessionManager creates a manager with no sessions.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c == nil || c.Logger == nil {
		return nil, ErrMissingDependency
	}

	gsm := &GameSessionManager{
		sessions:    make(map[uuid.UUID]*managedSession),
		leaderboard: c.Leaderboard,
		gameRepo:    c.GameRepo,
		userRepo:    c.UserRepo,
		logger:      c.Logger,
		tickRate:    c.TickRate,
		sessionTTL:  c.SessionTTL,
		width:       c.Width,
		height:      c.Height,
		seed:        c.Seed,
	}
	if gsm.tickRate <= 0 {
		gsm.tickRate = defaultTickRate
	}
	if gsm.sessionTTL <= 0 {
		gsm.sessionTTL = defaultGameDuration
	}
	if gsm.seed == nil {
		gsm.seed = func() int64 { return rand.Int63() }
	}
	return gsm, nil
}

// NewSession builds a maze for c and starts ticking it. Unless fixedSeed is set
// c.Seed is replaced by a drawn one, so zero is a valid chosen seed. Zero cell
// counts fall back to game.DefaultCells.
func (g *GameSessionManager) NewSession(owner uuid.UUID, c game.Config, fixedSeed bool) (game.Snapshot, error) {
	if c.CellsHorizontal == 0 {
		c.CellsHorizontal = game.DefaultCells
	}
	if c.CellsVertical == 0 {
		c.CellsVertical = game.DefaultCells
	}
	if !fixedSeed {
		c.Seed = g.seed()
	}
	c.ID = uuid.Nil
	if c.Width == 0 {
		c.Width = g.width
	}
	if c.Height == 0 {
		c.Height = g.height
	}

	session, err := game.New(c)
	if err != nil {
		return game.Snapshot{}, err
	}

	ms := &managedSession{
		owner:       owner,
		session:     session,
		fixedSeed:   fixedSeed,
		stop:        make(chan struct{}),
		subscribers: make(map[int]chan game.Snapshot),
	}

	id := session.ID()
	g.Lock()
	ms.expiry = time.AfterFunc(g.sessionTTL, func() {
		if g.remove(id) {
			g.logger.Info(fmt.Sprintf("session %s expired", id))
		}
	})
	g.sessions[id] = ms
	g.Unlock()

	go g.run(ms)

	g.logger.Info(fmt.Sprintf("started %dx%d maze %s for player %s", c.CellsVertical, c.CellsHorizontal, id, owner))
	return session.Snapshot(), nil
}

// Snapshot returns the full state of a session.
func (g *GameSessionManager) Snapshot(owner, id uuid.UUID) (game.Snapshot, error) {
	ms, err := g.lookup(owner, id)
	if err != nil {
		return game.Snapshot{}, err
	}
	return ms.current().Snapshot(), nil
}

// Nudge applies one impulse to the session's ball.
func (g *GameSessionManager) Nudge(owner, id uuid.UUID, dir maze.Direction) error {
	ms, err := g.lookup(owner, id)
	if err != nil {
		return err
	}
	ms.current().Nudge(dir)
	return nil
}

// Reset discards the session's world and builds a new one under the same ID.
// Sessions created with an explicit seed replay the same maze.
func (g *GameSessionManager) Reset(owner, id uuid.UUID) (game.Snapshot, error) {
	ms, err := g.lookup(owner, id)
	if err != nil {
		return game.Snapshot{}, err
	}

	ms.Lock()
	defer ms.Unlock()

	c := ms.session.Config()
	if !ms.fixedSeed {
		c.Seed = g.seed()
	}
	session, err := game.New(c)
	if err != nil {
		return game.Snapshot{}, err
	}
	ms.session = session
	ms.expiry.Reset(g.sessionTTL)

	g.logger.Info(fmt.Sprintf("reset session %s", id))
	return session.Snapshot(), nil
}

// Hint returns the path from the ball's cell to the goal.
func (g *GameSessionManager) Hint(owner, id uuid.UUID) ([]maze.Cell, error) {
	ms, err := g.lookup(owner, id)
	if err != nil {
		return nil, err
	}
	return ms.current().Hint(), nil
}

// End stops a session and closes its subscribers.
func (g *GameSessionManager) End(owner, id uuid.UUID) error {
	if _, err := g.lookup(owner, id); err != nil {
		return err
	}
	if g.remove(id) {
		g.logger.Info(fmt.Sprintf("ended session %s", id))
	}
	return nil
}

// Subscribe streams one frame per tick. Frames are dropped for subscribers that
// fall behind. The channel is closed when the session ends or cancel is called.
func (g *GameSessionManager) Subscribe(owner, id uuid.UUID) (<-chan game.Snapshot, func(), error) {
	ms, err := g.lookup(owner, id)
	if err != nil {
		return nil, nil, err
	}

	ms.Lock()
	defer ms.Unlock()
	if ms.closed {
		return nil, nil, ErrSessionNotFound
	}

	subID := ms.nextSub
	ms.nextSub++
	ch := make(chan game.Snapshot, subscriberBuffer)
	ms.subscribers[subID] = ch

	cancel := func() {
		ms.Lock()
		defer ms.Unlock()
		if c, ok := ms.subscribers[subID]; ok {
			close(c)
			delete(ms.subscribers, subID)
		}
	}
	return ch, cancel, nil
}

// StopAll ends every session.
func (g *GameSessionManager) StopAll() {
	g.RLock()
	ids := make([]uuid.UUID, 0, len(g.sessions))
	for id := range g.sessions {
		ids = append(ids, id)
	}
	g.RUnlock()

	for _, id := range ids {
		g.remove(id)
	}
}

func (g *GameSessionManager) lookup(owner, id uuid.UUID) (*managedSession, error) {
	g.RLock()
	defer g.RUnlock()

	ms, ok := g.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if ms.owner != owner {
		return nil, ErrNotOwner
	}
	return ms, nil
}

// remove deletes the session and stops its loop. It reports whether the
// session was still present.
func (g *GameSessionManager) remove(id uuid.UUID) bool {
	g.Lock()
	ms, ok := g.sessions[id]
	delete(g.sessions, id)
	g.Unlock()

	if !ok {
		return false
	}
	ms.expiry.Stop()
	close(ms.stop)
	return true
}

func (g *GameSessionManager) run(ms *managedSession) {
	ticker := time.NewTicker(g.tickRate)
	defer ticker.Stop()
	defer ms.closeSubscribers()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			session := ms.current()
			if session.Step() {
				go g.record(ms.owner, session)
			}
			ms.broadcast(session.Frame())
		}
	}
}

// record stores a finished run on the leaderboard and in the game history.
func (g *GameSessionManager) record(owner uuid.UUID, session *game.Session) {
	c := session.Config()
	ticks := session.WonAtTick()
	g.logger.Info(fmt.Sprintf("player %s solved %dx%d maze %s in %d ticks", owner, c.CellsVertical, c.CellsHorizontal, session.ID(), ticks))

	if g.leaderboard != nil {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		best, err := g.leaderboard.Record(ctx, LeaderboardKey(c.CellsVertical, c.CellsHorizontal), owner, ticks)
		cancel()
		if err != nil {
			g.logger.Error(fmt.Sprintf("recording leaderboard entry: %s", err))
		} else if best {
			g.logger.Info(fmt.Sprintf("new best time for player %s", owner))
		}
	}

	if g.gameRepo != nil {
		err := g.gameRepo.Save(&dmn.GameRecord{
			ID:         uuid.New(),
			SessionID:  session.ID(),
			PlayerID:   owner,
			Rows:       c.CellsVertical,
			Cols:       c.CellsHorizontal,
			Seed:       c.Seed,
			Ticks:      ticks,
			FinishedAt: time.Now().UTC(),
		})
		if err != nil {
			g.logger.Error(fmt.Sprintf("saving game history: %s", err))
		}
	}

	if g.userRepo != nil {
		if err := g.userRepo.IncrementGamesWon(owner); err != nil {
			g.logger.Warning(fmt.Sprintf("counting win for player %s: %s", owner, err))
		}
	}
}
