package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/Garsondee/Sky-Raid/internal/game"
	"github.com/Garsondee/Sky-Raid/internal/term"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	var seed int64
	flag.StringVar(&configPath, "config", os.Getenv("SKYRAID_CONFIG"), "YAML settings file")
	flag.Int64Var(&seed, "seed", envSeed(), "RNG seed (0 = time based)")
	flag.Parse()

	cfg := game.DefaultSettings()
	if configPath != "" {
		var err error
		if cfg, err = game.LoadSettings(configPath); err != nil {
			log.Fatal(err)
		}
	}

	var opts []game.Option
	if seed != 0 {
		opts = append(opts, game.WithRandSeed(seed))
	}
	eng, err := game.New(cfg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := s.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = term.NewHost(eng, s).Run(ctx)
	stop()
	s.Fini()

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	log.Printf("final score %d", eng.Snapshot().Player.Score)
}

func envSeed() int64 {
	v := os.Getenv("SKYRAID_SEED")
	if v == "" {
		return 0
	}
	seed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("ignoring SKYRAID_SEED=%q: %v", v, err)
		return 0
	}
	return seed
}
