// greedychess plays a game against the greedy bot in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/greedychess/internal/board"
	"github.com/hailam/greedychess/internal/cli"
	"github.com/hailam/greedychess/internal/engine"
	"github.com/hailam/greedychess/internal/storage"
)

var (
	colorFlag  = flag.String("color", "white", "side you play (white or black)")
	reachFlag  = flag.Int("reach", board.DefaultReach, "bot move generator reach (2 or 7)")
	dbFlag     = flag.String("db", "", "database directory (default: platform data dir, or $"+storage.DataDirEnv+")")
	nameFlag   = flag.String("name", "Player", "player name")
	noStore    = flag.Bool("nostore", false, "do not load or save preferences and statistics")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if err := run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run plays the session. Deferred cleanup runs before main decides the exit status.
func run(in io.Reader, out io.Writer) error {
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	prefs := storage.DefaultPreferences()
	var store *storage.Storage
	if !*noStore {
		var err error
		store, err = openStorage(*dbFlag)
		if err != nil {
			log.Printf("Warning: storage unavailable: %v (preferences and statistics disabled)", err)
		} else {
			defer store.Close()
			if prefs, err = store.LoadPreferences(); err != nil {
				log.Printf("Warning: could not load preferences: %v", err)
			}
		}
	}

	// Flags given on the command line override stored preferences.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			prefs.PlayerColor = *colorFlag
		case "reach":
			prefs.Reach = *reachFlag
		case "name":
			prefs.Username = *nameFlag
		}
	})
	if _, ok := board.ParseColor(prefs.PlayerColor); !ok {
		return fmt.Errorf("unknown color %q", prefs.PlayerColor)
	}

	cfg := cli.Config{
		In:          in,
		Out:         out,
		Name:        prefs.Username,
		PlayerColor: prefs.Color(),
		Bot:         engine.NewGreedyBot(prefs.Reach),
	}
	if store != nil {
		cfg.Recorder = store
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("Warning: could not save preferences: %v", err)
		}
	}

	if err := cli.NewSession(cfg).Run(); err != nil {
		return err
	}

	if store != nil {
		if stats, err := store.LoadStats(); err == nil && stats.GamesPlayed > 0 {
			log.Printf("%d games played, %.1f moves per game, %d bot captures",
				stats.GamesPlayed, stats.MovesPerGame(), stats.BotCaptures)
		}
	}
	return nil
}

func openStorage(dir string) (*storage.Storage, error) {
	if dir != "" {
		return storage.Open(dir)
	}
	return storage.NewStorage()
}
