package ui

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/duck-hunt/internal/game"
)

// copyScoreboard places the scoreboard text on the system clipboard.
func copyScoreboard(rs game.Records) error {
	text := "Duck Hunt best scores\n" + game.FormatRecords(rs)
	return clipboard.WriteAll(strings.TrimRight(text, "\n"))
}
