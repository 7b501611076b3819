package maze

// Solve returns the path of cells from the top-left cell to the bottom-right
// cell, both included. In a perfect maze the path is unique.
func (m *Maze) Solve() []Cell {
	return m.Path(Cell{0, 0}, Cell{m.Rows - 1, m.Cols - 1})
}

// Path returns the shortest path of cells between from and to through open
// passages, or nil when either cell is out of the grid or to is unreachable.
func (m *Maze) Path(from, to Cell) []Cell {
	if !m.InBound(from.Row, from.Col) || !m.InBound(to.Row, to.Col) {
		return nil
	}

	parent := make(map[Cell]Cell, m.Rows*m.Cols)
	parent[from] = from
	queue := []Cell{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}

		for _, dir := range Directions {
			if !m.CanMove(cur.Row, cur.Col, dir) {
				continue
			}
			dr, dc := dir.Delta()
			next := Cell{cur.Row + dr, cur.Col + dc}
			if _, seen := parent[next]; !seen {
				parent[next] = cur
				queue = append(queue, next)
			}
		}
	}

	if _, ok := parent[to]; !ok {
		return nil
	}

	var path []Cell
	for c := to; c != from; c = parent[c] {
		path = append(path, c)
	}
	path = append(path, from)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
