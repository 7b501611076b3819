package maze

// Direction names one of the four grid neighbours of a cell.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in the order neighbours are assembled
// before shuffling.
var Directions = [4]Direction{Up, Right, Down, Left}

var directionNames = map[Direction]string{
	Up:    "up",
	Right: "right",
	Down:  "down",
	Left:  "left",
}

// Delta returns the row and column offset of the neighbour in direction d.
func (d Direction) Delta() (row, col int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	}
	return 0, 0
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "unknown"
}

// ParseDirection converts "up", "right", "down" or "left" into a Direction.
func ParseDirection(s string) (Direction, bool) {
	for d, name := range directionNames {
		if name == s {
			return d, true
		}
	}
	return 0, false
}
