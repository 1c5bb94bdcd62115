// Package uci speaks the Universal Chess Interface for the greedy bot, so
// that it can be loaded into a chess GUI.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/greedychess/internal/board"
	"github.com/hailam/greedychess/internal/engine"
	"github.com/hailam/greedychess/internal/game"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	bot *engine.GreedyBot
	out io.Writer

	board  *board.Board
	toMove board.Color
}

// New creates a new UCI protocol handler writing to out.
func New(bot *engine.GreedyBot, out io.Writer) *UCI {
	u := &UCI{bot: bot, out: out}
	u.handleNewGame()
	return u
}

// Run reads commands from in until "quit" or end of input.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo()
		case "stop":
			// The search is a single ply and has finished before "stop" can arrive.
		case "quit":
			return nil
		// Debug commands
		case "d":
			fmt.Fprint(u.out, u.board.String())
			fmt.Fprintf(u.out, "%s to move\n", u.toMove)
		case "perft":
			u.handlePerft(args)
		default:
			fmt.Fprintf(u.out, "info string unknown command: %s\n", cmd)
		}
	}
	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	fmt.Fprintf(u.out, "id name %s\n", u.bot.Name())
	fmt.Fprintln(u.out, "id author greedychess")
	fmt.Fprintln(u.out, "uciok")
}

// handleNewGame resets to the starting position.
func (u *UCI) handleNewGame() {
	u.board = game.InitialBoard()
	u.toMove = board.White
}

// handlePosition sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	if args[0] != "startpos" {
		fmt.Fprintf(u.out, "info string unsupported position type: %s\n", args[0])
		return
	}
	u.handleNewGame()

	if len(args) < 2 || args[1] != "moves" {
		return
	}
	for _, moveStr := range args[2:] {
		if err := u.applyMove(moveStr); err != nil {
			fmt.Fprintf(u.out, "info string Invalid move %s: %v\n", moveStr, err)
			return
		}
	}
}

// applyMove plays a long algebraic move such as "e2e4" or "e7e8q".
func (u *UCI) applyMove(moveStr string) error {
	if len(moveStr) != 4 && len(moveStr) != 5 {
		return errors.New("want 4 or 5 characters")
	}
	m, err := board.ParseMove(moveStr[:4])
	if err != nil {
		return err
	}

	var opts []game.MoveOption
	if len(moveStr) == 5 {
		pt := board.PieceTypeFromChar(moveStr[4])
		if pt == board.NoPieceType {
			return fmt.Errorf("unknown promotion piece %q", moveStr[4])
		}
		opts = append(opts, game.WithPromotion(pt))
	}

	if _, err := game.ValidateAndApply(u.board, m.From, m.To, u.toMove, opts...); err != nil {
		return err
	}
	u.toMove = u.toMove.Other()
	return nil
}

// handleGo answers with the bot's move. Time controls are ignored. The bot
// plays on a copy so the position stays as the GUI last set it.
func (u *UCI) handleGo() {
	b := u.board.Copy()

	start := time.Now()
	m, ok := u.bot.ChooseMove(b, u.toMove)
	elapsed := time.Since(start)

	if !ok {
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	}
	score := engine.Evaluate(b)
	if u.toMove == board.White {
		score = -score
	}
	fmt.Fprintf(u.out, "info depth 1 score cp %d time %d pv %s\n", score*100, elapsed.Milliseconds(), m)
	fmt.Fprintf(u.out, "bestmove %s\n", m)
}

// handlePerft runs a perft test with the bot's generator.
func (u *UCI) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d >= 0 {
			depth = d
		}
	}

	start := time.Now()
	nodes := u.bot.Generator.Perft(u.board.Copy(), u.toMove, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(u.out, "NPS: %.0f\n", nps)
	}
}
