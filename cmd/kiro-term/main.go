package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"legend-of-kiro/internal/render/terminal"
	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/world"
)

func main() {
	autoStart := flag.Bool("autostart", false, "skip the start screen")
	seed := flag.String("seed", "", "deterministic world seed")
	hold := flag.Duration("hold", terminal.DefaultHoldWindow, "how long a direction stays held after a key event")
	flag.Parse()

	if err := run(*autoStart, *seed, *hold); err != nil {
		fmt.Fprintf(os.Stderr, "kiro-term: %v\n", err)
		os.Exit(1)
	}
}

func run(autoStart bool, seed string, hold time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	cfg := sim.DefaultConfig()
	cfg.AutoStart = autoStart
	var deps sim.Deps
	if seed != "" {
		deps.RNG = world.DeterministicFactory(seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	return terminal.New(screen, terminal.Config{HoldWindow: hold}, cfg, deps).Run(ctx)
}
