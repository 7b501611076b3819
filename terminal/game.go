package terminal

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gdamore/tcell/v2"
)

const frameInterval = 16 * time.Millisecond

var arrowDirections = map[tcell.Key]maze.Direction{
	tcell.KeyUp:    maze.Up,
	tcell.KeyRight: maze.Right,
	tcell.KeyDown:  maze.Down,
	tcell.KeyLeft:  maze.Left,
}

// Game plays one local session on a terminal screen.
type Game struct {
	screen   tcell.Screen
	renderer *Renderer
	sound    Sound
	config   game.Config
	session  *game.Session
	showHint bool
	quit     bool
}

// NewGame starts a session for c. sound may be nil.
func NewGame(screen tcell.Screen, c game.Config, sound Sound) (*Game, error) {
	session, err := game.New(c)
	if err != nil {
		return nil, err
	}
	return &Game{
		screen:   screen,
		renderer: NewRenderer(screen),
		sound:    sound,
		config:   c,
		session:  session,
	}, nil
}

// Session returns the session being played.
func (g *Game) Session() *game.Session {
	return g.session
}

// Quit reports whether the player asked to leave.
func (g *Game) Quit() bool {
	return g.quit
}

// HandleKey applies one key press. Arrows and WASD nudge the ball, r builds
// the next maze, h toggles the path hint and q, Esc or Ctrl-C quit.
func (g *Game) HandleKey(key tcell.Key, r rune) error {
	if dir, ok := arrowDirections[key]; ok {
		g.session.Nudge(dir)
		return nil
	}
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.quit = true
		return nil
	case tcell.KeyRune:
	default:
		return nil
	}

	if dir, ok := game.ParseKey(r); ok {
		g.session.Nudge(dir)
		return nil
	}
	switch r {
	case 'q', 'Q':
		g.quit = true
	case 'h', 'H':
		g.showHint = !g.showHint
	case 'r', 'R':
		return g.reset()
	}
	return nil
}

// reset replaces the session with the maze of the next seed.
func (g *Game) reset() error {
	c := g.config
	c.Seed++
	session, err := game.New(c)
	if err != nil {
		return err
	}
	g.config = c
	g.session = session
	return nil
}

// Step advances the world one tick and chimes on the tick the goal is reached.
func (g *Game) Step() {
	if g.session.Step() && g.sound != nil {
		g.sound.Play()
	}
}

// Draw renders the current state and the status line.
func (g *Game) Draw() {
	snap := g.session.Snapshot()
	var hint []maze.Cell
	if g.showHint && !snap.Won {
		hint = g.session.Hint()
	}
	g.renderer.Draw(snap, hint, g.status(snap))
	g.screen.Show()
}

func (g *Game) status(snap game.Snapshot) string {
	if snap.Won {
		return fmt.Sprintf(" solved in %d ticks | r: next maze  q: quit", snap.WonAtTick)
	}
	return fmt.Sprintf(" seed %d  tick %d | arrows/wasd: roll  h: hint  r: new maze  q: quit", g.config.Seed, snap.Tick)
}

// Run polls input and ticks the world until the player quits.
func (g *Game) Run() error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	g.Draw()
	for !g.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if err := g.HandleKey(ev.Key(), ev.Rune()); err != nil {
					return err
				}
			case *tcell.EventResize:
				g.screen.Sync()
			}
		case <-ticker.C:
			g.Step()
			g.Draw()
		}
	}
	return nil
}
