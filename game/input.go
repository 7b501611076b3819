package game

import (
	"unicode"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// keyDirections maps the WASD keys onto impulse directions.
var keyDirections = map[rune]maze.Direction{
	'w': maze.Up,
	'd': maze.Right,
	's': maze.Down,
	'a': maze.Left,
}

// keyCodes maps DOM key codes onto impulse directions.
var keyCodes = map[int]maze.Direction{
	87: maze.Up,
	68: maze.Right,
	83: maze.Down,
	65: maze.Left,
}

// ParseKey returns the direction bound to key r, case-insensitive.
func ParseKey(r rune) (maze.Direction, bool) {
	dir, ok := keyDirections[unicode.ToLower(r)]
	return dir, ok
}

// ParseKeyCode returns the direction bound to a browser key code.
func ParseKeyCode(code int) (maze.Direction, bool) {
	dir, ok := keyCodes[code]
	return dir, ok
}
