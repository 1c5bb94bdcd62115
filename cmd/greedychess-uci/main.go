// greedychess-uci runs the greedy bot as a UCI engine on stdin and stdout.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/greedychess/internal/board"
	"github.com/hailam/greedychess/internal/engine"
	"github.com/hailam/greedychess/internal/uci"
)

var (
	reach      = flag.Int("reach", board.DefaultReach, "move generator reach (2 or 7)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	protocol := uci.New(engine.NewGreedyBot(*reach), os.Stdout)
	if err := protocol.Run(os.Stdin); err != nil {
		log.Print(err)
	}
}
