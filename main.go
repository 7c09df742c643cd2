package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/aegisx/ricochet/pkg/app"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	gameplayPath := flag.String("config", "assets/config/gameplay.yaml", "gameplay config file")
	birdsPath := flag.String("birds", "assets/config/birds.yaml", "bird stats config file")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.Version())
		os.Exit(0)
	}

	game, err := app.NewApp(app.Config{
		Verbose:            *verbose,
		GameplayConfigPath: *gameplayPath,
		BirdStatsPath:      *birdsPath,
		Seed:               *seed,
	})
	if err != nil {
		log.Fatalf("failed to initialize game: %v", err)
	}

	ebiten.SetWindowSize(800, 600)
	ebiten.SetWindowTitle("Ricochet Hunter")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
