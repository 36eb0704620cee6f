package game

import "fmt"

// Level is a difficulty level, 1 (slowest spawn cadence) to 3 (fastest).
type Level int

const (
	Level1 Level = iota + 1
	Level2
	Level3
)

// LevelCount is the number of playable levels.
const LevelCount = 3

// Valid reports whether l is one of the playable levels.
func (l Level) Valid() bool {
	return l >= Level1 && l <= Level3
}

// Next cycles 1 -> 2 -> 3 -> 1.
func (l Level) Next() Level {
	if l >= Level3 || l < Level1 {
		return Level1
	}
	return l + 1
}

// Prev cycles 1 -> 3 -> 2 -> 1.
func (l Level) Prev() Level {
	if l <= Level1 || l > Level3 {
		return Level3
	}
	return l - 1
}

// index maps the level onto a zero-based array slot.
func (l Level) index() int {
	return int(l) - 1
}

func (l Level) String() string {
	return fmt.Sprintf("L%d", int(l))
}

// Levels lists every playable level in ascending order.
func Levels() [LevelCount]Level {
	return [LevelCount]Level{Level1, Level2, Level3}
}
