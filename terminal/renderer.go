// Package terminal plays maze sessions in a character terminal.
package terminal

import (
	"math"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/layout"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gdamore/tcell/v2"
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
}

var (
	wallStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	boundaryStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	goalStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	ballStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	hintStyle     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	statusStyle   = tcell.StyleDefault.Reverse(true)
)

const (
	wallRune = '█'
	goalRune = '▓'
	ballRune = 'O'
	hintRune = '·'
)

// Renderer scales world coordinates onto terminal cells. The last row is
// reserved for the status line.
type Renderer struct {
	canvas Canvas
}

// NewRenderer creates a renderer drawing on c.
func NewRenderer(c Canvas) *Renderer {
	return &Renderer{canvas: c}
}

// Draw paints snap, the optional hint path and status. The ball is drawn
// last so it stays visible over the goal.
func (r *Renderer) Draw(snap game.Snapshot, hint []maze.Cell, status string) {
	r.canvas.Clear()
	cols, rows := r.canvas.Size()
	rows--
	if cols <= 0 || rows <= 0 || snap.Width <= 0 || snap.Height <= 0 {
		return
	}
	sx := float64(cols) / snap.Width
	sy := float64(rows) / snap.Height

	for _, b := range snap.Bodies {
		if b.Shape != "rect" {
			continue
		}
		ch, style := wallRune, wallStyle
		switch b.Kind {
		case layout.KindGoal:
			ch, style = goalRune, goalStyle
		case layout.KindBoundary:
			style = boundaryStyle
		}
		r.fillRect(b, sx, sy, cols, rows, ch, style)
	}

	if snap.Maze != nil {
		unitX := snap.Width / float64(snap.Maze.Cols)
		unitY := snap.Height / float64(snap.Maze.Rows)
		for _, cell := range hint {
			x := cellIndex((float64(cell.Col)+0.5)*unitX*sx, cols)
			y := cellIndex((float64(cell.Row)+0.5)*unitY*sy, rows)
			r.canvas.SetContent(x, y, hintRune, nil, hintStyle)
		}
	}

	ball := snap.Ball
	r.canvas.SetContent(cellIndex(ball.X*sx, cols), cellIndex(ball.Y*sy, rows), ballRune, nil, ballStyle)

	for i, ch := range status {
		if i >= cols {
			break
		}
		r.canvas.SetContent(i, rows, ch, nil, statusStyle)
	}
}

// fillRect covers every cell the rectangle overlaps, at least one.
func (r *Renderer) fillRect(b game.BodyState, sx, sy float64, cols, rows int, ch rune, style tcell.Style) {
	x0 := cellIndex((b.X-b.Width/2)*sx, cols)
	x1 := cellIndex((b.X+b.Width/2)*sx, cols)
	y0 := cellIndex((b.Y-b.Height/2)*sy, rows)
	y1 := cellIndex((b.Y+b.Height/2)*sy, rows)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.canvas.SetContent(x, y, ch, nil, style)
		}
	}
}

func cellIndex(v float64, n int) int {
	i := int(math.Floor(v))
	return max(0, min(n-1, i))
}
