package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/Garsondee/Sky-Raid/internal/game"
	"github.com/Garsondee/Sky-Raid/internal/screen"
)

func main() {
	// A missing .env is fine; flags and defaults cover everything.
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

	g := screen.New(eng)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Sky Raid")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
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
