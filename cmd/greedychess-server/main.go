// greedychess-server serves games against the greedy bot over HTTP and WebSocket.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hailam/greedychess/internal/board"
	"github.com/hailam/greedychess/internal/engine"
	"github.com/hailam/greedychess/internal/server"
)

var (
	addrFlag    = flag.String("addr", "", "listen address (default :$PORT, or :3000)")
	reachFlag   = flag.Int("reach", board.DefaultReach, "bot move generator reach (2 or 7)")
	originsFlag = flag.String("origins", "*", "allowed CORS origins")
)

func main() {
	flag.Parse()

	addr := *addrFlag
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		addr = ":" + port
	}

	bot := engine.NewGreedyBot(*reachFlag)
	srv := server.New(server.NewRegistry(bot), server.Config{
		AllowOrigins: *originsFlag,
	})

	log.Printf("%s listening on %s", bot.Name(), addr)
	log.Fatal(srv.Listen(addr))
}
