/*
Package maze provides tools for creating and inspecting rectangular perfect mazes.

A maze is stored as two passage grids. Verticals[r][c] reports whether the wall
between cell (r,c) and (r,c+1) is open, Horizontals[r][c] whether the wall between
cell (r,c) and (r+1,c) is open. A generated maze is a spanning tree over the cells:
every cell is reachable from every other one through exactly one path.

Generation uses a randomized depth-first backtracker driven by an injectable Source,
so the same seed and dimensions always produce the same maze.
*/
package maze

import (
	"errors"
	"strings"
)

const (
	// MaxDimension bounds rows and columns accepted by Generate.
	MaxDimension = 100
)

var (
	ErrInvalidDimension = errors.New("invalid maze dimensions")
)

// Maze is a perfect maze over a Rows x Cols grid.
type Maze struct {
	Rows        int      `json:"rows"`
	Cols        int      `json:"cols"`
	Verticals   [][]bool `json:"verticals"`   // Rows x (Cols-1), true means open.
	Horizontals [][]bool `json:"horizontals"` // (Rows-1) x Cols, true means open.
}

// frame is one level of the backtracker's explicit stack.
type frame struct {
	row, col  int
	neighbors []Direction
	next      int
}

// Generate builds a perfect maze with the given dimensions using src for every
// random choice.
func Generate(rows, cols int, src Source) (*Maze, error) {
	if min(rows, cols) < 1 || max(rows, cols) > MaxDimension {
		return nil, ErrInvalidDimension
	}

	m := newClosed(rows, cols)
	visited := make([][]bool, rows)
	for r := range visited {
		visited[r] = make([]bool, cols)
	}

	start := frame{row: src.Intn(rows), col: src.Intn(cols)}
	visited[start.row][start.col] = true
	start.neighbors = shuffled(src)
	stack := []frame{start}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.neighbors) {
			stack = stack[:len(stack)-1]
			continue
		}

		dir := top.neighbors[top.next]
		top.next++

		dr, dc := dir.Delta()
		row, col := top.row+dr, top.col+dc
		if !m.InBound(row, col) || visited[row][col] {
			continue
		}

		m.open(top.row, top.col, dir)
		visited[row][col] = true
		stack = append(stack, frame{row: row, col: col, neighbors: shuffled(src)})
	}

	return m, nil
}

// newClosed allocates a maze with every passage closed.
func newClosed(rows, cols int) *Maze {
	verticals := make([][]bool, rows)
	for r := range verticals {
		verticals[r] = make([]bool, cols-1)
	}

	horizontals := make([][]bool, rows-1)
	for r := range horizontals {
		horizontals[r] = make([]bool, cols)
	}

	return &Maze{
		Rows:        rows,
		Cols:        cols,
		Verticals:   verticals,
		Horizontals: horizontals,
	}
}

func shuffled(src Source) []Direction {
	dirs := Directions
	neighbors := dirs[:]
	shuffle(neighbors, src)
	return neighbors
}

// InBound reports whether (row, col) lies inside the grid.
func (m *Maze) InBound(row, col int) bool {
	return row >= 0 && row < m.Rows && col >= 0 && col < m.Cols
}

// open removes the wall between (row, col) and its neighbour in direction dir.
func (m *Maze) open(row, col int, dir Direction) {
	switch dir {
	case Up:
		m.Horizontals[row-1][col] = true
	case Right:
		m.Verticals[row][col] = true
	case Down:
		m.Horizontals[row][col] = true
	case Left:
		m.Verticals[row][col-1] = true
	}
}

// CanMove reports whether the wall between (row, col) and its neighbour in
// direction dir is open.
func (m *Maze) CanMove(row, col int, dir Direction) bool {
	dr, dc := dir.Delta()
	if !m.InBound(row, col) || !m.InBound(row+dr, col+dc) {
		return false
	}

	switch dir {
	case Up:
		return m.Horizontals[row-1][col]
	case Right:
		return m.Verticals[row][col]
	case Down:
		return m.Horizontals[row][col]
	case Left:
		return m.Verticals[row][col-1]
	default:
		return false
	}
}

// OpenPassages counts open entries across both passage grids.
func (m *Maze) OpenPassages() int {
	count := 0
	for _, row := range m.Verticals {
		for _, open := range row {
			if open {
				count++
			}
		}
	}
	for _, row := range m.Horizontals {
		for _, open := range row {
			if open {
				count++
			}
		}
	}
	return count
}

// Reachable returns the number of cells reachable from (row, col) through
// open passages.
func (m *Maze) Reachable(row, col int) int {
	if !m.InBound(row, col) {
		return 0
	}

	seen := make([][]bool, m.Rows)
	for r := range seen {
		seen[r] = make([]bool, m.Cols)
	}

	stack := []Cell{{row, col}}
	seen[row][col] = true
	count := 0
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		for _, dir := range Directions {
			if !m.CanMove(cur.Row, cur.Col, dir) {
				continue
			}
			dr, dc := dir.Delta()
			next := Cell{cur.Row + dr, cur.Col + dc}
			if !seen[next.Row][next.Col] {
				seen[next.Row][next.Col] = true
				stack = append(stack, next)
			}
		}
	}
	return count
}

// Cell addresses one grid cell.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", m.Cols) + "\n")

	for row := 0; row < m.Rows; row++ {
		b.WriteString("|")
		for col := 0; col < m.Cols; col++ {
			b.WriteString("   ")
			if col < m.Cols-1 && m.Verticals[row][col] {
				b.WriteString(" ")
			} else {
				b.WriteString("|")
			}
		}
		b.WriteString("\n")

		b.WriteString("+")
		for col := 0; col < m.Cols; col++ {
			if row < m.Rows-1 && m.Horizontals[row][col] {
				b.WriteString("   +")
			} else {
				b.WriteString("---+")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
