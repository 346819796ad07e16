// Command gradterm previews an animated gradient in the terminal and edits
// it from the keyboard.
//
// Keys:
//
//	m        next mode
//	space    freeze / resume animation
//	[ ]      base weight down / up
//	1-4 ← →  select a colour, lower / raise its weight
//	c        add / remove colour 4
//	t        text-safe mode
//	u r      undo / redo
//	s        save preset to -save
//	q        quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/gradient"
	"github.com/gogpu/gradient/store"
)

func main() {
	var (
		preset  = flag.String("preset", "", "preset JSON file to start from")
		save    = flag.String("save", "", "file the s key writes the preset to")
		logFile = flag.String("log", "", "write debug logs to this file")
	)
	flag.Parse()

	if err := run(*preset, *save, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "gradterm: %v\n", err)
		os.Exit(1)
	}
}

func run(presetPath, savePath, logPath string) error {
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return err
		}
		defer f.Close()
		gradient.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := gradient.DefaultConfig()
	if presetPath != "" {
		data, err := os.ReadFile(presetPath)
		if err != nil {
			return err
		}
		if _, cfg, err = store.UnmarshalPreset(data); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	w, h := frameSize(cols, rows)
	r, err := gradient.NewRenderer(w, h)
	if err != nil {
		return err
	}
	defer r.Close()

	a := newApp(store.New(cfg), r, savePath)

	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				cols, rows = screen.Size()
				if err := r.Resize(frameSize(cols, rows)); err != nil {
					return err
				}
			}

		case <-ticker.C:
			if _, err := r.Tick(a.store); err != nil {
				return err
			}
			if err := a.draw(screen, cols, rows); err != nil {
				return err
			}
			screen.Show()
		}
	}
}
