package main

import (
	"context"
	"flag"
	"log"
	"os"

	"legend-of-kiro/internal/render/desktop"
	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/telemetry"
	"legend-of-kiro/internal/world"
	"legend-of-kiro/logging"
	"legend-of-kiro/logging/sinks"
)

func main() {
	autoStart := flag.Bool("autostart", false, "skip the start screen")
	seed := flag.String("seed", "", "deterministic world seed")
	verbose := flag.Bool("v", false, "print game events to stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "kiro ", log.LstdFlags)
	deps := sim.Deps{Logger: telemetry.WrapLogger(logger)}
	if *seed != "" {
		deps.RNG = world.DeterministicFactory(*seed)
	}
	if *verbose {
		router, err := logging.NewRouter(logging.DefaultConfig(), logging.SystemClock{}, logger, map[string]logging.Sink{
			logging.SinkConsole: sinks.NewConsole(os.Stderr),
		})
		if err != nil {
			log.Fatalf("failed to construct logging router: %v", err)
		}
		defer router.Close(context.Background())
		deps.Publisher = router
	}

	cfg := sim.DefaultConfig()
	cfg.AutoStart = *autoStart
	if err := desktop.Run(desktop.New(cfg, deps), "Legend of Kiro"); err != nil {
		logger.Printf("%v", err)
		os.Exit(1)
	}
}
