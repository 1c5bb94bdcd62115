package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/hailam/greedychess/internal/board"
)

// Render writes the board with a file header and rank labels, followed by a
// blank line:
//
//	  a b c d e f g h
//	8 r n b q k b n r
//	...
func Render(w io.Writer, b *board.Board) {
	grid := b.Snapshot()
	RenderRows(w, grid.Rows())
}

// RenderRows renders eight diagram rows, the 8th rank first.
func RenderRows(w io.Writer, rows []string) {
	fmt.Fprintln(w, "  a b c d e f g h")
	for i, row := range rows {
		fmt.Fprintf(w, "%d %s\n", 8-i, strings.Join(strings.Split(row, ""), " "))
	}
	fmt.Fprintln(w)
}
