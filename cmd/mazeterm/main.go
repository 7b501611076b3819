// Command mazeterm plays a marble maze in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/terminal"
	"github.com/gdamore/tcell/v2"
)

// chime is the audio the game plays on a win.
type chime interface {
	terminal.Sound
	Close()
}

type options struct {
	cols, rows int
	seed       int64
	mute       bool
}

func main() {
	var o options
	flag.IntVar(&o.cols, "cols", game.DefaultCells, "maze columns")
	flag.IntVar(&o.rows, "rows", game.DefaultCells, "maze rows")
	flag.Int64Var(&o.seed, "seed", time.Now().UnixNano(), "maze seed")
	flag.BoolVar(&o.mute, "mute", false, "disable the win chime")
	flag.Parse()

	newChime := func() (chime, error) { return terminal.NewChime() }
	if err := run(o, tcell.NewScreen, newChime); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run owns every resource it opens so they are released before main exits.
func run(o options, newScreen func() (tcell.Screen, error), newChime func() (chime, error)) error {
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	var sound terminal.Sound
	if !o.mute {
		c, err := newChime()
		if err != nil {
			fmt.Fprintf(os.Stderr, "audio disabled: %v\n", err)
		}
		defer c.Close()
		sound = c
	}

	g, err := terminal.NewGame(screen, game.Config{
		CellsHorizontal: o.cols,
		CellsVertical:   o.rows,
		Seed:            o.seed,
	}, sound)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	return g.Run()
}
