// Command tileworld runs the tile world in a terminal
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tileworld/core"
	"github.com/lixenwraith/tileworld/game"
	"github.com/lixenwraith/tileworld/render"
)

func main() {
	// Restore the terminal before reporting a crash on the main goroutine
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flags := game.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if logFile := game.SetupLogging(flags.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "tileworld: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *game.Flags) error {
	session, err := game.Prepare(flags)
	if err != nil || session == nil {
		return err
	}

	if err := session.Sound.Initialize(); err != nil {
		// Non-fatal, the game runs silent
		log.Printf("%v (continuing without audio)", err)
	}
	defer session.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.SetCrashScreen(screen)
	defer screen.Fini()
	screen.HideCursor()
	screen.EnableFocus()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := session.World.Map
	comp := render.NewCompositor(m, render.NewPalette(m.Registry()), session.Stats)
	fe := newTerminalFrontend(render.NewTerminalRenderer(screen, comp), session.Keys, pollEvents(ctx, screen))

	log.Printf("tileworld: %dx%d map, %d entities", m.Width(), m.Height(), session.World.Len())
	err = session.Loop.Run(ctx, fe)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
