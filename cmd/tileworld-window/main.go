// Command tileworld-window runs the tile world in a desktop window
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/tileworld/game"
)

const windowScale = 3

func main() {
	flags := game.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if logFile := game.SetupLogging(flags.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "tileworld-window: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *game.Flags) error {
	session, err := game.Prepare(flags)
	if err != nil || session == nil {
		return err
	}

	if err := session.Sound.Initialize(); err != nil {
		log.Printf("%v (continuing without audio)", err)
	}
	defer session.Close()

	g := newWindowGame(session)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w*windowScale, h*windowScale)
	ebiten.SetWindowTitle("tileworld")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
